package archive_test

import (
	"errors"
	"os"

	. "github.com/dwcj/installer/pkg/testutils"
	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/dwcj/installer/pkg/archive"
	"github.com/dwcj/installer/pkg/installlog"
)

const POM = `<project><artifactId>app</artifactId></project>`

const PREFIX = "dwcj-installer: "

var _ = Describe("archive extraction", func() {
	var fs vfs.FileSystem
	var log *installlog.Log

	BeforeEach(func() {
		fs = Must(MemoryFileSystem("/srv/deploy/app"))
		log = installlog.New()
	})

	AfterEach(func() {
		vfs.Cleanup(fs)
	})

	Context("single entry", func() {
		It("extracts deeply nested entry byte-identical", func() {
			MustBeSuccessful(WriteZip(fs, "/srv/deploy/app/app.jar",
				ZipEntry{Name: "META-INF/"},
				ZipEntry{Name: "META-INF/maven/org.demo/app/pom.xml", Content: POM},
				ZipEntry{Name: "org/demo/App.class", Content: "\xca\xfe\xba\xbe"},
			))
			dst := Must(archive.ExtractSingle(fs, "/srv/deploy/app/app.jar", "pom.xml", "/srv/deploy/app", log, PREFIX))
			Expect(dst).To(Equal("/srv/deploy/app/pom.xml"))
			Expect(string(Must(vfs.ReadFile(fs, dst)))).To(Equal(POM))
			Expect(log.Lines()).To(Equal([]string{"dwcj-installer: extracting pom.xml"}))
		})

		It("uses the given prefix", func() {
			MustBeSuccessful(WriteZip(fs, "/srv/deploy/app/app.jar", ZipEntry{Name: "pom.xml", Content: POM}))
			Must(archive.ExtractSingle(fs, "/srv/deploy/app/app.jar", "pom.xml", "/srv/deploy/app", log, "app> "))
			Expect(log.Lines()).To(Equal([]string{"app> extracting pom.xml"}))
		})

		It("uses the first matching entry and overwrites existing files", func() {
			MustBeSuccessful(vfs.WriteFile(fs, "/srv/deploy/app/pom.xml", []byte("stale"), 0o644))
			MustBeSuccessful(WriteZip(fs, "/srv/deploy/app/app.jar",
				ZipEntry{Name: "a/pom.xml", Content: "first"},
				ZipEntry{Name: "b/pom.xml", Content: "second"},
			))
			dst := Must(archive.ExtractSingle(fs, "/srv/deploy/app/app.jar", "pom.xml", "/srv/deploy/app", nil, PREFIX))
			Expect(string(Must(vfs.ReadFile(fs, dst)))).To(Equal("first"))
		})

		It("fails without matching entry", func() {
			MustBeSuccessful(WriteZip(fs, "/srv/deploy/app/app.jar", ZipEntry{Name: "README", Content: "x"}))
			_, err := archive.ExtractSingle(fs, "/srv/deploy/app/app.jar", "pom.xml", "/srv/deploy/app", log, PREFIX)
			Expect(errors.Is(err, archive.ErrNoMatch)).To(BeTrue())
			var xerr *archive.ExtractionError
			Expect(errors.As(err, &xerr)).To(BeTrue())
			Expect(log.Len()).To(Equal(0))
		})

		It("fails for unreadable archives", func() {
			MustBeSuccessful(vfs.WriteFile(fs, "/srv/deploy/app/app.jar", []byte("no zip"), 0o644))
			_, err := archive.ExtractSingle(fs, "/srv/deploy/app/app.jar", "pom.xml", "/srv/deploy/app", log, PREFIX)
			var xerr *archive.ExtractionError
			Expect(errors.As(err, &xerr)).To(BeTrue())
			Expect(xerr.Archive).To(Equal("/srv/deploy/app/app.jar"))

			_, err = archive.ExtractSingle(fs, "/srv/deploy/app/missing.jar", "pom.xml", "/srv/deploy/app", log, PREFIX)
			Expect(errors.As(err, &xerr)).To(BeTrue())
		})
	})

	Context("matching entries", func() {
		BeforeEach(func() {
			MustBeSuccessful(WriteZip(fs, "/dep/dwcj-engine.jar",
				ZipEntry{Name: "bbj/"},
				ZipEntry{Name: "bbj/dwcj.bbj", Content: "rem main"},
				ZipEntry{Name: "bbj/lib/util.bbj", Content: "rem util"},
				ZipEntry{Name: "org/dwcj/Engine.class", Content: "class"},
				ZipEntry{Name: "bbj/readme.txt", Content: "text"},
			))
		})

		It("extracts matching entries keeping relative paths", func() {
			n := Must(archive.ExtractAllMatching(fs, "/dep/dwcj-engine.jar", ".bbj", "/srv/deploy/app", log, PREFIX))
			Expect(n).To(Equal(2))
			Expect(string(Must(vfs.ReadFile(fs, "/srv/deploy/app/bbj/dwcj.bbj")))).To(Equal("rem main"))
			Expect(string(Must(vfs.ReadFile(fs, "/srv/deploy/app/bbj/lib/util.bbj")))).To(Equal("rem util"))
			Expect(Exists(fs, "/srv/deploy/app/bbj/readme.txt")).To(BeFalse())
			Expect(log.Lines()).To(Equal([]string{
				"dwcj-installer: extracting /srv/deploy/app/bbj/dwcj.bbj",
				"dwcj-installer: extracting /srv/deploy/app/bbj/lib/util.bbj",
			}))
		})

		It("replaces existing files", func() {
			MustBeSuccessful(fs.MkdirAll("/srv/deploy/app/bbj", 0o755))
			MustBeSuccessful(vfs.WriteFile(fs, "/srv/deploy/app/bbj/dwcj.bbj", []byte("an older and longer version"), 0o644))
			Must(archive.ExtractAllMatching(fs, "/dep/dwcj-engine.jar", ".bbj", "/srv/deploy/app", log, PREFIX))
			Expect(string(Must(vfs.ReadFile(fs, "/srv/deploy/app/bbj/dwcj.bbj")))).To(Equal("rem main"))
		})

		It("leaves destination unchanged without matches", func() {
			n := Must(archive.ExtractAllMatching(fs, "/dep/dwcj-engine.jar", ".src", "/srv/deploy/app", log, PREFIX))
			Expect(n).To(Equal(0))
			Expect(log.Len()).To(Equal(0))
			Expect(Must(vfs.ReadDir(fs, "/srv/deploy/app"))).To(BeEmpty())
		})

		It("rejects entries escaping the destination", func() {
			MustBeSuccessful(WriteZip(fs, "/dep/evil.jar", ZipEntry{Name: "../../etc/evil.bbj", Content: "x"}))
			_, err := archive.ExtractAllMatching(fs, "/dep/evil.jar", ".bbj", "/srv/deploy/app", log, PREFIX)
			Expect(errors.Is(err, archive.ErrIllegalPath)).To(BeTrue())
			Expect(Exists(fs, "/etc/evil.bbj")).To(BeFalse())
		})
	})

	Context("complete archive", func() {
		It("restores structure and modes", func() {
			MustBeSuccessful(WriteZip(fs, "/tmp/tool.zip",
				ZipEntry{Name: "tool/"},
				ZipEntry{Name: "tool/bin/"},
				ZipEntry{Name: "tool/bin/run", Content: "#!/bin/sh", Mode: 0o755},
				ZipEntry{Name: "tool/conf/settings.xml", Content: "<settings/>"},
				ZipEntry{Name: "tool/empty/"},
			))
			MustBeSuccessful(archive.ExtractAll(fs, "/tmp/tool.zip", "/opt"))
			Expect(DirExists(fs, "/opt/tool/empty")).To(BeTrue())
			Expect(string(Must(vfs.ReadFile(fs, "/opt/tool/conf/settings.xml")))).To(Equal("<settings/>"))
			fi := Must(fs.Stat("/opt/tool/bin/run"))
			Expect(fi.Mode().Perm()).To(Equal(os.FileMode(0o755)))
		})
	})

	It("maps entry names", func() {
		Expect(Must(archive.Target("/d", "bbj/x.bbj"))).To(Equal("/d/bbj/x.bbj"))
		Expect(Must(archive.Target("/d", "./bbj/../x.bbj"))).To(Equal("/d/x.bbj"))
		_, err := archive.Target("/d", "/abs/x.bbj")
		Expect(err).To(HaveOccurred())
		_, err = archive.Target("/d", "a/../../x.bbj")
		Expect(err).To(HaveOccurred())
	})
})
