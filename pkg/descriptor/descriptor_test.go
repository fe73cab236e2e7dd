package descriptor_test

import (
	"errors"

	. "github.com/dwcj/installer/pkg/testutils"
	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-test/deep"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/dwcj/installer/pkg/descriptor"
)

var _ = Describe("descriptor", func() {
	var fs vfs.FileSystem

	BeforeEach(func() {
		fs = Must(MemoryFileSystem())
		MustBeSuccessful(ImportFiles(fs, "testdata", "/testdata"))
	})

	AfterEach(func() {
		vfs.Cleanup(fs)
	})

	Context("extract", func() {
		It("reads the first matching plugin configuration", func() {
			cfg := Must(descriptor.Extract(fs, "/testdata/pom.xml", descriptor.DefaultPlugin()))
			Expect(deep.Equal(cfg, descriptor.Configuration{
				"deployurl":   "http://localhost:8888/dwcj-install",
				"publishname": "Demo",
				"debug":       "true",
				"classname":   "com.example.DemoApp",
			})).To(BeNil())
		})

		It("is idempotent", func() {
			a := Must(descriptor.Extract(fs, "/testdata/pom.xml", descriptor.DefaultPlugin()))
			b := Must(descriptor.Extract(fs, "/testdata/pom.xml", descriptor.DefaultPlugin()))
			Expect(a).To(Equal(b))
		})

		It("returns an empty configuration without plugin declaration", func() {
			cfg := Must(descriptor.Extract(fs, "/testdata/noplugin.xml", descriptor.DefaultPlugin()))
			Expect(cfg).To(BeEmpty())
			Expect(cfg).NotTo(BeNil())
		})

		It("uses alternate plugin identities", func() {
			cfg := Must(descriptor.Extract(fs, "/testdata/noplugin.xml", descriptor.Plugin{GroupID: "org.dwcj", ArtifactID: "other-plugin"}))
			Expect(cfg).To(Equal(descriptor.Configuration{"publishname": "Other"}))
		})

		It("reports unreadable descriptors", func() {
			_, err := descriptor.Extract(fs, "/testdata/missing.xml", descriptor.DefaultPlugin())
			var perr *descriptor.ParseError
			Expect(errors.As(err, &perr)).To(BeTrue())
			Expect(perr.Path).To(Equal("/testdata/missing.xml"))
		})
	})

	Context("parse", func() {
		It("reports malformed descriptors", func() {
			_, err := descriptor.Parse([]byte("<project><build></project>"), descriptor.DefaultPlugin())
			Expect(err).To(HaveOccurred())
			_, err = descriptor.Parse([]byte(""), descriptor.DefaultPlugin())
			Expect(err).To(HaveOccurred())
		})

		It("rejects content after the root element", func() {
			_, err := descriptor.Parse([]byte("<project></project><broken"), descriptor.DefaultPlugin())
			Expect(err).To(HaveOccurred())
			_, err = descriptor.Parse([]byte("<project/><project/>"), descriptor.DefaultPlugin())
			Expect(err).To(HaveOccurred())
			_, err = descriptor.Parse([]byte("<project/>text"), descriptor.DefaultPlugin())
			Expect(err).To(HaveOccurred())
		})

		It("accepts comments and white space after the root element", func() {
			cfg := Must(descriptor.Parse([]byte("<project/>\n<!-- generated -->\n"), descriptor.DefaultPlugin()))
			Expect(cfg).To(BeEmpty())
		})

		It("reports trailing content of descriptor files", func() {
			MustBeSuccessful(vfs.WriteFile(fs, "/testdata/twice.xml", []byte("<project/><project/>"), 0o644))
			_, err := descriptor.Extract(fs, "/testdata/twice.xml", descriptor.DefaultPlugin())
			var perr *descriptor.ParseError
			Expect(errors.As(err, &perr)).To(BeTrue())
		})

		It("accepts a matching plugin without configuration", func() {
			cfg := Must(descriptor.Parse([]byte(`
<project>
  <build><plugins>
    <plugin><groupId>org.dwcj</groupId><artifactId>dwcj-install-maven-plugin</artifactId></plugin>
    <plugin><groupId>org.dwcj</groupId><artifactId>dwcj-install-maven-plugin</artifactId>
      <configuration><publishname>Second</publishname></configuration>
    </plugin>
  </plugins></build>
</project>`), descriptor.DefaultPlugin()))
			Expect(cfg).To(BeEmpty())
		})

		It("skips plugins without identity", func() {
			cfg := Must(descriptor.Parse([]byte(`
<project>
  <build><plugins>
    <plugin><artifactId>dwcj-install-maven-plugin</artifactId><configuration><a>1</a></configuration></plugin>
    <plugin><groupId>org.dwcj</groupId><artifactId>dwcj-install-maven-plugin</artifactId>
      <configuration><a>2</a><a>3</a><nested><x>4</x><y>5</y></nested></configuration>
    </plugin>
  </plugins></build>
</project>`), descriptor.DefaultPlugin()))
			Expect(cfg).To(Equal(descriptor.Configuration{"a": "3", "nested": "45"}))
		})
	})

	Context("options", func() {
		It("applies defaults for an empty configuration", func() {
			opts := descriptor.Configuration{}.Options("myapp-1", descriptor.DefaultDefaults())
			Expect(opts).To(Equal(descriptor.Options{
				PublishName: "myapp-1",
				Username:    "admin",
				Password:    "admin123",
			}))
		})

		It("uses configured values", func() {
			opts := descriptor.Configuration{
				"publishname": "Demo",
				"username":    "deployer",
				"password":    "secret",
				"token":       "",
				"debug":       "true",
				"classname":   "com.example.DemoApp",
			}.Options("app", descriptor.Defaults{})
			Expect(opts).To(Equal(descriptor.Options{
				PublishName: "Demo",
				Username:    "deployer",
				Password:    "secret",
				HasToken:    true,
				Debug:       true,
				ClassName:   "com.example.DemoApp",
			}))
		})

		It("enables debug only for true", func() {
			Expect(descriptor.Configuration{"debug": "yes"}.Options("app", descriptor.Defaults{}).Debug).To(BeFalse())
			Expect(descriptor.Configuration{"debug": "TRUE"}.Options("app", descriptor.Defaults{}).Debug).To(BeFalse())
		})

		It("masks credentials", func() {
			cfg := descriptor.Configuration{"password": "secret", "token": "t", "publishname": "Demo"}
			Expect(cfg.Masked()).To(Equal(descriptor.Configuration{"password": "***", "token": "***", "publishname": "Demo"}))
			Expect(cfg.Keys()).To(Equal([]string{"password", "publishname", "token"}))
		})
	})
})
