package media_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cowjuh/fs-utilities/internal/media"
	"github.com/cowjuh/fs-utilities/internal/pdf"
	"github.com/cowjuh/fs-utilities/pkg/logger"
	"github.com/cowjuh/fs-utilities/pkg/models"
)

func mediaTestLogger() *logger.Logger {
	log := logger.New(
		logger.WithOutput(GinkgoWriter),
		logger.WithPrefix("[media-test] "),
		logger.WithFlags(0),
	)
	log.SetVerbose(true)
	return log
}

func writePNG(path string, img image.Image) {
	f, err := os.Create(path)
	Expect(err).NotTo(HaveOccurred())
	defer f.Close()
	Expect(png.Encode(f, img)).To(Succeed())
}

func writeJPEG(path string, img image.Image) {
	f, err := os.Create(path)
	Expect(err).NotTo(HaveOccurred())
	defer f.Close()
	Expect(jpeg.Encode(f, img, nil)).To(Succeed())
}

// writeJPEGWithOrientation splices a minimal EXIF APP1 segment carrying
// the orientation tag (0x0112) right after the SOI marker, the way camera
// firmware tags rotated photos.
func writeJPEGWithOrientation(path string, img image.Image, orientation byte) {
	var buf bytes.Buffer
	Expect(jpeg.Encode(&buf, img, nil)).To(Succeed())
	data := buf.Bytes()

	payload := []byte{
		'E', 'x', 'i', 'f', 0x00, 0x00,
		// TIFF header, little endian, IFD0 at offset 8.
		'I', 'I', 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00,
		// One IFD entry: tag 0x0112, type SHORT, count 1.
		0x01, 0x00,
		0x12, 0x01, 0x03, 0x00, 0x01, 0x00, 0x00, 0x00, orientation, 0x00, 0x00, 0x00,
		// No next IFD.
		0x00, 0x00, 0x00, 0x00,
	}
	app1 := append([]byte{0xFF, 0xE1, byte((len(payload) + 2) >> 8), byte((len(payload) + 2) & 0xFF)}, payload...)

	out := append([]byte{}, data[:2]...)
	out = append(out, app1...)
	out = append(out, data[2:]...)
	Expect(os.WriteFile(path, out, 0644)).To(Succeed())
}

func opaqueRGBA(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{R: 10, G: 20, B: 30, A: 255}}, image.Point{}, draw.Src)
	return img
}

var _ = Describe("Prober", func() {
	var (
		prober  *media.Prober
		testDir string
	)

	BeforeEach(func() {
		var err error
		testDir, err = os.MkdirTemp("", "media-test-*")
		Expect(err).NotTo(HaveOccurred())

		log := mediaTestLogger()
		prober = media.NewProber(300, pdf.NewRasterizer(300, log), log)
	})

	AfterEach(func() {
		os.RemoveAll(testDir)
	})

	Context("probing a PNG", func() {
		It("should report dimensions and exact inch conversion", func() {
			path := filepath.Join(testDir, "swatch.png")
			writePNG(path, image.NewRGBA(image.Rect(0, 0, 600, 150)))

			item, img, err := prober.Probe(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(img).NotTo(BeNil())

			Expect(item.WidthPx).To(Equal(600))
			Expect(item.HeightPx).To(Equal(150))
			Expect(item.WidthIn).To(Equal(600.0 / 300.0))
			Expect(item.HeightIn).To(Equal(150.0 / 300.0))
			Expect(item.Format).To(Equal(models.FormatPNG))
		})

		It("should report RGB for opaque truecolor and RGBA when alpha is present", func() {
			// A fully opaque image encodes as truecolor without alpha.
			opaque := filepath.Join(testDir, "opaque.png")
			writePNG(opaque, opaqueRGBA(10, 10))

			translucent := filepath.Join(testDir, "translucent.png")
			img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
			img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 128})
			writePNG(translucent, img)

			item, _, err := prober.Probe(opaque)
			Expect(err).NotTo(HaveOccurred())
			Expect(item.Mode).To(Equal(models.ModeRGB))

			item, _, err = prober.Probe(translucent)
			Expect(err).NotTo(HaveOccurred())
			Expect(item.Mode).To(Equal(models.ModeRGBA))
		})

		It("should report L for grayscale", func() {
			path := filepath.Join(testDir, "gray.png")
			writePNG(path, image.NewGray(image.Rect(0, 0, 10, 10)))

			item, _, err := prober.Probe(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(item.Mode).To(Equal(models.ModeGray))
		})
	})

	Context("probing a JPEG", func() {
		It("should report RGB mode and JPEG format", func() {
			path := filepath.Join(testDir, "photo.jpg")
			writeJPEG(path, image.NewRGBA(image.Rect(0, 0, 30, 45)))

			item, _, err := prober.Probe(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(item.Mode).To(Equal(models.ModeRGB))
			Expect(item.Format).To(Equal(models.FormatJPEG))
		})

		It("should rotate orientation-tagged photos without changing their mode", func() {
			// Orientation 6 is a 90-degree clockwise camera rotation.
			path := filepath.Join(testDir, "rotated.jpg")
			writeJPEGWithOrientation(path, opaqueRGBA(100, 50), 6)

			item, img, err := prober.Probe(path)
			Expect(err).NotTo(HaveOccurred())

			Expect(item.WidthPx).To(Equal(50))
			Expect(item.HeightPx).To(Equal(100))
			Expect(img.Bounds().Dx()).To(Equal(50))
			Expect(img.Bounds().Dy()).To(Equal(100))

			// The rotation buffers into NRGBA; the reported mode must
			// still be the decoded JPEG's.
			Expect(item.Mode).To(Equal(models.ModeRGB))
		})
	})

	Context("probing unsupported files", func() {
		It("should classify an unknown extension as ErrUnsupportedFormat", func() {
			path := filepath.Join(testDir, "notes.txt")
			Expect(os.WriteFile(path, []byte("text"), 0644)).To(Succeed())

			_, _, err := prober.Probe(path)
			Expect(errors.Is(err, media.ErrUnsupportedFormat)).To(BeTrue())
		})

		It("should classify undecodable pixel data as ErrUnsupportedFormat", func() {
			path := filepath.Join(testDir, "broken.png")
			Expect(os.WriteFile(path, []byte("not a png"), 0644)).To(Succeed())

			_, _, err := prober.Probe(path)
			Expect(errors.Is(err, media.ErrUnsupportedFormat)).To(BeTrue())
		})

		It("should classify an unreadable PDF as ErrUnsupportedFormat", func() {
			path := filepath.Join(testDir, "broken.pdf")
			Expect(os.WriteFile(path, []byte("not a pdf"), 0644)).To(Succeed())

			_, _, err := prober.Probe(path)
			Expect(errors.Is(err, media.ErrUnsupportedFormat)).To(BeTrue())
		})
	})

	Context("probing a whole listing", func() {
		var (
			logBuf *bytes.Buffer
			prober *media.Prober
		)

		BeforeEach(func() {
			logBuf = &bytes.Buffer{}
			log := logger.New(
				logger.WithOutput(io.MultiWriter(logBuf, GinkgoWriter)),
				logger.WithPrefix("[media-test] "),
				logger.WithFlags(0),
			)
			prober = media.NewProber(300, pdf.NewRasterizer(300, log), log)
		})

		It("should skip undecodable files, keep the rest, and name the skipped file", func() {
			good1 := filepath.Join(testDir, "a.png")
			good2 := filepath.Join(testDir, "b.png")
			bad := filepath.Join(testDir, "broken.png")
			writePNG(good1, image.NewRGBA(image.Rect(0, 0, 20, 10)))
			writePNG(good2, image.NewRGBA(image.Rect(0, 0, 10, 20)))
			Expect(os.WriteFile(bad, []byte("not a png"), 0644)).To(Succeed())

			results, err := prober.ProbeAll([]string{good1, bad, good2})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
			Expect(results[0].Item.Filename()).To(Equal("a.png"))
			Expect(results[1].Item.Filename()).To(Equal("b.png"))

			Expect(logBuf.String()).To(ContainSubstring("Skipping broken.png"))
		})

		It("should fail when no file in the listing can be decoded", func() {
			bad := filepath.Join(testDir, "broken.png")
			Expect(os.WriteFile(bad, []byte("not a png"), 0644)).To(Succeed())

			_, err := prober.ProbeAll([]string{bad})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("no supported media files"))
		})
	})

	Context("thumbnails", func() {
		DescribeTable("aspect ratio and bounding",
			func(w, h, target int) {
				src := image.NewRGBA(image.Rect(0, 0, w, h))
				thumb := media.Thumbnail(src, target)

				tw := thumb.Bounds().Dx()
				th := thumb.Bounds().Dy()

				Expect(tw).To(BeNumerically("<=", target))
				Expect(th).To(BeNumerically("<=", target))

				// Rounding to whole pixels shifts the ratio slightly on
				// very thin images, so the tolerance is relative.
				srcRatio := float64(w) / float64(h)
				thumbRatio := float64(tw) / float64(th)
				Expect(thumbRatio).To(BeNumerically("~", srcRatio, srcRatio*0.05))
			},
			Entry("landscape at 256", 1200, 400, 256),
			Entry("portrait at 256", 400, 1200, 256),
			Entry("square at 128", 900, 900, 128),
			Entry("extreme panorama at 256", 3000, 200, 256),
		)

		It("should make the larger dimension equal the target when downscaling", func() {
			src := image.NewRGBA(image.Rect(0, 0, 1024, 512))
			thumb := media.Thumbnail(src, 256)
			Expect(thumb.Bounds().Dx()).To(Equal(256))
			Expect(thumb.Bounds().Dy()).To(Equal(128))
		})

		It("should not upscale an image that already fits", func() {
			src := image.NewRGBA(image.Rect(0, 0, 40, 20))
			thumb := media.Thumbnail(src, 256)
			Expect(thumb.Bounds().Dx()).To(Equal(40))
			Expect(thumb.Bounds().Dy()).To(Equal(20))
		})
	})
})
