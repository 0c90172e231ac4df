package engine_test

import (
	"image/color"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/voicecanvas/internal/art"
	"github.com/san-kum/voicecanvas/internal/engine"
)

var _ = Describe("Controls", func() {
	var (
		r     *engine.Renderer
		notes []bool
	)

	BeforeEach(func() {
		r = engine.New(engine.Options{
			Width:  120,
			Height: 90,
			Style:  art.Abstract,
			Rand:   rand.New(rand.NewSource(7)),
		})
		notes = nil
		r.OnUndoPossible(func(ok bool) { notes = append(notes, ok) })
	})

	Describe("recording toggles", func() {
		It("does not snapshot before the first recording", func() {
			r.OnRecordingToggle(false)
			Expect(r.CanUndo()).To(BeFalse())
			Expect(notes).To(BeEmpty())
		})

		It("snapshots once on each stop", func() {
			r.OnRecordingToggle(true)
			r.OnRecordingToggle(false)
			r.OnRecordingToggle(false)
			Expect(r.Status().History).To(Equal(1))
			Expect(notes).To(Equal([]bool{true}))
		})

		It("keeps only the six most recent snapshots", func() {
			for i := 0; i < 10; i++ {
				r.OnRecordingToggle(true)
				r.OnRecordingToggle(false)
			}
			Expect(r.Status().History).To(Equal(6))
		})
	})

	Describe("clear", func() {
		BeforeEach(func() {
			r.OnVolumeSample(0.9)
			r.OnRecordingToggle(true)
			for i := 0; i < 5; i++ {
				r.Frame()
			}
			r.OnRecordingToggle(false)
		})

		It("empties particles and history", func() {
			Expect(r.Status().Particles).To(BeNumerically(">", 0))
			r.RequestClear()

			st := r.Status()
			Expect(st.Particles).To(BeZero())
			Expect(st.History).To(BeZero())
			Expect(st.CanUndo).To(BeFalse())
			Expect(notes).To(HaveLen(2))
			Expect(notes[1]).To(BeFalse())
		})

		It("paints white for paper styles", func() {
			r.RequestClear()
			Expect(r.Snapshot().RGBAAt(60, 45)).To(Equal(color.RGBA{255, 255, 255, 255}))
		})

		It("leaves neon transparent", func() {
			r.SetStyle(art.Neon)
			r.RequestClear()
			Expect(r.Snapshot().RGBAAt(60, 45)).To(Equal(color.RGBA{}))
		})
	})

	Describe("undo", func() {
		It("is a no-op with empty history", func() {
			r.RequestUndo()
			Expect(notes).To(BeEmpty())
		})

		It("pops newest first", func() {
			r.RequestClear()
			r.OnRecordingToggle(true)
			r.OnRecordingToggle(false)
			r.SetStyle(art.Neon)
			r.RequestClear()
			r.OnRecordingToggle(true)
			r.OnRecordingToggle(false)
			r.SetStyle(art.Abstract)
			r.OnRecordingToggle(true)
			r.OnRecordingToggle(false)

			// History holds [transparent, transparent]; the white one was cleared.
			Expect(r.Status().History).To(Equal(2))
			r.RequestUndo()
			Expect(r.Snapshot().RGBAAt(0, 0)).To(Equal(color.RGBA{}))
			Expect(r.CanUndo()).To(BeTrue())
			r.RequestUndo()
			Expect(r.CanUndo()).To(BeFalse())
			Expect(notes[len(notes)-1]).To(BeFalse())
		})
	})

	Describe("analysis updates", func() {
		It("uses the last record delivered", func() {
			r.OnAnalysisUpdate(art.Analysis{Tempo: art.TempoFast, Keywords: []string{"tech talk"}})
			Expect(r.Status().Config.ShapeHint).To(Equal(art.ShapeSquare))
			Expect(r.Status().Config.SpeedMultiplier).To(Equal(2.5))

			r.OnAnalysisUpdate(art.Analysis{})
			Expect(r.Status().Config.ShapeHint).To(Equal(art.ShapeCircle))
			Expect(r.Status().Config.SpeedMultiplier).To(Equal(1.0))
			Expect(r.Status().Config.PaletteHex()).To(Equal([]string{"#ffffff"}))
		})
	})

	Describe("resize", func() {
		It("stretches the raster without letterboxing", func() {
			r.RequestClear()
			r.Resize(240, 45)
			st := r.Status()
			Expect(st.Width).To(Equal(240))
			Expect(st.Height).To(Equal(45))
			Expect(r.Snapshot().RGBAAt(239, 44)).To(Equal(color.RGBA{255, 255, 255, 255}))
		})

		It("skips frames while the surface has no area", func() {
			r.Resize(0, 10)
			r.OnRecordingToggle(true)
			r.OnVolumeSample(1)
			Expect(r.Frame().Skipped).To(BeTrue())
			Expect(r.Snapshot()).To(BeNil())
		})
	})
})
