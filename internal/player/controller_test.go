package player_test

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/notify"
	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/trace"
)

func makeSteps(n int) trace.Steps {
	steps := make(trace.Steps, n)
	for i := range steps {
		steps[i] = trace.Step{Elements: trace.ElementsOf([]int{i}), Description: fmt.Sprintf("step %d", i)}
	}
	return steps
}

var _ = Describe("Controller", func() {
	var (
		sched    *player.ManualScheduler
		rec      *notify.Recorder
		rendered []int
		c        *player.Controller
	)

	BeforeEach(func() {
		sched = &player.ManualScheduler{}
		rec = &notify.Recorder{}
		rendered = nil
		c = player.New(
			player.WithScheduler(sched),
			player.WithNotifier(rec),
			player.WithBaseInterval(time.Second),
			player.WithRenderer(player.RendererFunc(func(i int, _ trace.Step) {
				rendered = append(rendered, i)
			})),
		)
	})

	Context("without steps", func() {
		It("ignores play and stays idle", func() {
			c.Play()
			Expect(c.State()).To(Equal(player.Idle))
			Expect(sched.Pending()).To(BeZero())

			c.Load("empty", nil)
			c.Play()
			Expect(c.State()).To(Equal(player.Idle))
			Expect(sched.Pending()).To(BeZero())
		})

		It("rejects seeking", func() {
			Expect(c.Seek(0)).To(MatchError(player.ErrNoSession))
		})
	})

	Context("with a loaded session", func() {
		BeforeEach(func() {
			c.Load("bubble_sort", makeSteps(4))
		})

		It("shows the first step on load", func() {
			Expect(c.Index()).To(Equal(0))
			Expect(rendered).To(Equal([]int{0}))
			Expect(c.Session().ID.String()).NotTo(BeEmpty())
		})

		It("plays to completion one tick at a time", func() {
			c.Play()
			Expect(c.State()).To(Equal(player.Playing))
			Expect(sched.Drain(c)).To(Equal(3))
			Expect(c.State()).To(Equal(player.Completed))
			Expect(c.Index()).To(Equal(3))
			Expect(rendered).To(Equal([]int{0, 1, 2, 3}))
			Expect(sched.Pending()).To(BeZero())

			n, ok := rec.Last()
			Expect(ok).To(BeTrue())
			Expect(n.Title).To(Equal("Reached the end"))
		})

		It("schedules ticks at the base interval divided by speed", func() {
			Expect(c.SetSpeed(2)).To(Succeed())
			c.Play()
			_, after, ok := sched.Next()
			Expect(ok).To(BeTrue())
			Expect(after).To(Equal(500 * time.Millisecond))
		})

		It("changes speed without moving", func() {
			c.StepForward()
			Expect(c.SetSpeed(4)).To(Succeed())
			Expect(c.Index()).To(Equal(1))
			Expect(c.SetSpeed(0)).To(MatchError(player.ErrInvalidSpeed))
			Expect(c.SetSpeed(-1)).To(HaveOccurred())
			Expect(c.Speed()).To(Equal(4.0))
		})

		It("stops scheduling when paused", func() {
			c.Play()
			tok, _, _ := sched.Next()
			c.Pause()
			Expect(c.State()).To(Equal(player.Paused))
			Expect(c.Tick(tok)).To(BeFalse())
			Expect(c.Index()).To(Equal(0))
		})

		It("toggles between playing and paused", func() {
			c.Toggle()
			Expect(c.State()).To(Equal(player.Playing))
			c.Toggle()
			Expect(c.State()).To(Equal(player.Paused))
		})

		It("clamps stepping at both ends", func() {
			Expect(c.StepBackward()).To(BeFalse())
			Expect(c.Index()).To(Equal(0))

			c.JumpToEnd()
			Expect(c.Index()).To(Equal(3))
			Expect(c.StepForward()).To(BeFalse())
			Expect(c.Index()).To(Equal(3))

			n, _ := rec.Last()
			Expect(n.Title).To(Equal("Reached the end"))
		})

		It("does not double-advance when stepping while playing", func() {
			c.Play()
			first, _, _ := sched.Next()

			Expect(c.StepForward()).To(BeTrue())
			Expect(c.Index()).To(Equal(1))

			Expect(c.Tick(first)).To(BeFalse(), "the tick scheduled before the step is stale")
			Expect(c.Index()).To(Equal(1))

			second, _, ok := sched.Next()
			Expect(ok).To(BeTrue())
			Expect(c.Tick(second)).To(BeTrue())
			Expect(c.Index()).To(Equal(2))
		})

		It("drops ticks from a replaced session", func() {
			c.Play()
			stale, _, _ := sched.Next()

			c.Load("quick_sort", makeSteps(3))
			c.Play()
			Expect(c.Tick(stale)).To(BeFalse())
			Expect(c.Index()).To(Equal(0))
			Expect(c.Session().Algorithm).To(Equal("quick_sort"))
		})

		It("drops ticks after close", func() {
			c.Play()
			tok, _, _ := sched.Next()
			c.Close()
			Expect(c.Tick(tok)).To(BeFalse())
			Expect(c.Session()).To(BeNil())
			Expect(c.Index()).To(Equal(-1))
		})

		It("completes when a jump while playing reaches the last step", func() {
			c.Play()
			tok, _, _ := sched.Next()
			c.JumpToEnd()
			Expect(c.State()).To(Equal(player.Completed))
			Expect(c.Index()).To(Equal(3))
			Expect(c.Tick(tok)).To(BeFalse())
			Expect(sched.Pending()).To(BeZero())

			n, _ := rec.Last()
			Expect(n.Variant).To(Equal(notify.VariantSuccess))

			c.JumpToStart()
			Expect(c.Index()).To(Equal(0))
			Expect(c.State()).To(Equal(player.Paused))
		})

		It("completes when stepping onto the last step while playing", func() {
			Expect(c.Seek(2)).To(Succeed())
			c.Play()
			Expect(c.StepForward()).To(BeTrue())
			Expect(c.State()).To(Equal(player.Completed))
			Expect(sched.Drain(c)).To(BeZero(), "the earlier tick is stale")
			Expect(c.Index()).To(Equal(3))
		})

		It("keeps a paused player paused on the last step", func() {
			c.JumpToEnd()
			Expect(c.State()).To(Equal(player.Idle))
			Expect(c.Index()).To(Equal(3))
		})

		It("resets to idle at the first step", func() {
			c.Play()
			sched.Drain(c)
			c.Reset()
			Expect(c.State()).To(Equal(player.Idle))
			Expect(c.Index()).To(Equal(0))
			Expect(rendered[len(rendered)-1]).To(Equal(0))
		})

		It("restarts from the beginning after completion", func() {
			c.Play()
			sched.Drain(c)
			c.Play()
			Expect(c.State()).To(Equal(player.Playing))
			Expect(c.Index()).To(Equal(0))
		})

		It("leaves completed when stepping back", func() {
			c.Play()
			sched.Drain(c)
			Expect(c.StepBackward()).To(BeTrue())
			Expect(c.State()).To(Equal(player.Paused))
		})

		It("seeks within range only", func() {
			Expect(c.Seek(2)).To(Succeed())
			Expect(c.Index()).To(Equal(2))
			Expect(c.Seek(4)).To(MatchError(ContainSubstring("out of range")))
			Expect(c.Index()).To(Equal(2))
		})

		It("renders in strictly monotonic order while playing", func() {
			c.Play()
			sched.Drain(c)
			for i := 1; i < len(rendered); i++ {
				Expect(rendered[i]).To(Equal(rendered[i-1] + 1))
			}
		})
	})

	Context("with a single step", func() {
		It("completes immediately", func() {
			c.Load("peek", makeSteps(1))
			c.Play()
			Expect(c.State()).To(Equal(player.Completed))
			Expect(sched.Pending()).To(BeZero())
		})
	})
})

var _ = Describe("Session", func() {
	It("resumes frames where the consumer stopped", func() {
		c := player.New()
		s := c.Load("insertion_sort", makeSteps(5))

		var seen []int
		for i := range s.Frames() {
			seen = append(seen, i)
			if i == 2 {
				break
			}
		}
		Expect(seen).To(Equal([]int{1, 2}))
		Expect(s.Index).To(Equal(2))

		for i := range s.Frames() {
			seen = append(seen, i)
		}
		Expect(seen).To(Equal([]int{1, 2, 3, 4}))
		Expect(s.AtEnd()).To(BeTrue())
	})

	It("owns a copy of the loaded steps", func() {
		steps := makeSteps(2)
		s := player.New().Load("x", steps)
		steps[0].Description = "changed"
		Expect(s.Steps[0].Description).To(Equal("step 0"))
	})
})
