package cliconfig

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/wayfinder/pkg/config"
)

var _ = Describe("Persistent flags", func() {
	var (
		root   *cobra.Command
		sub    *cobra.Command
		tmpDir string
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "wayfinder-cliconfig-test-*")
		Expect(err).NotTo(HaveOccurred())

		root = &cobra.Command{Use: "wayfinder"}
		AddPersistentFlags(root)
		sub = &cobra.Command{Use: "sub", RunE: func(*cobra.Command, []string) error { return nil }}
		root.AddCommand(sub)
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	writeConfig := func(body string) string {
		path := filepath.Join(tmpDir, "wayfinder.toml")
		Expect(os.WriteFile(path, []byte(body), 0o600)).To(Succeed())
		return path
	}

	It("lets --debug win over the file and over a reloaded file", func() {
		path := writeConfig("debug = false\n")
		root.SetArgs([]string{"sub", "--config", path, "--debug"})
		Expect(root.Execute()).To(Succeed())

		cfg, gotPath, err := Load(sub)
		Expect(err).NotTo(HaveOccurred())
		Expect(gotPath).To(Equal(path))
		Expect(cfg.Debug).To(BeTrue())

		reloaded, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(reloaded.Debug).To(BeFalse())

		ApplyPersistent(sub, reloaded)
		Expect(reloaded.Debug).To(BeTrue())
	})

	It("keeps the file value when --debug is not given", func() {
		path := writeConfig("debug = true\n")
		root.SetArgs([]string{"sub", "--config", path})
		Expect(root.Execute()).To(Succeed())

		cfg, _, err := Load(sub)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Debug).To(BeTrue())

		next := config.Default()
		ApplyPersistent(sub, next)
		Expect(next.Debug).To(BeFalse())
	})
})
