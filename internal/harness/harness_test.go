package harness_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/okian/wordlebench/internal/adapters/baseline"
	"github.com/okian/wordlebench/internal/domain/model"
	"github.com/okian/wordlebench/internal/domain/scoring"
	"github.com/okian/wordlebench/internal/domain/stats"
	"github.com/okian/wordlebench/internal/domain/strategy"
	"github.com/okian/wordlebench/internal/harness"
	logging "github.com/okian/wordlebench/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logging.Init()
}

var answers = model.MustParseWords("crane", "trace", "slate", "adieu", "pious", "fjord", "nymph", "glyph", "brake", "spoon", "sober", "proof")

// firstConsistent guesses the first listed word that agrees with all feedback so far.
var firstConsistent = strategy.Func(func(guesses *model.WordList, history model.Trace) string {
	for _, w := range guesses.All() {
		if scoring.Consistent(w, history) {
			return string(w)
		}
	}
	return "zzzzz"
})

// scripted plays a fixed opening followed by the secret it was told about.
type scripted map[model.Word][]string

func (s scripted) NewGame(*model.WordList) strategy.Game { return &scriptedGame{plan: s} }

type scriptedGame struct {
	plan scripted
	n    int
}

func (g *scriptedGame) Guess(history model.Trace) string {
	defer func() { g.n++ }()
	if g.n == 0 {
		return "slate"
	}
	// the second guess is keyed on the feedback the opening produced
	for secret, words := range g.plan {
		if scoring.Consistent(secret, history) {
			return words[min(g.n, len(words)-1)]
		}
	}
	return "slate"
}

type broken struct{}

func (broken) NewGame(*model.WordList) strategy.Game { return broken{} }
func (broken) Guess(model.Trace) string              { return "xx" }
func (broken) Version() string                       { return "0.0.1" }

func newHarness(mode harness.ExecutionMode, opts ...harness.Option) *harness.Harness {
	base := []harness.Option{
		harness.WithAnswers(answers),
		harness.WithGuesses(model.NewWordList(answers)),
		harness.WithExecutionMode(mode),
		harness.WithWorkerCount(4),
		harness.WithQueueSize(3),
	}
	return harness.New(append(base, opts...)...)
}

func TestRunDeterminism(t *testing.T) {
	defer goleak.VerifyNone(t)

	Convey("Given the same strategies in serial and parallel harnesses", t, func() {
		ctx := context.Background()
		serial := newHarness(harness.Serial, harness.WithRetainTraces(true))
		parallel := newHarness(harness.Parallel, harness.WithRetainTraces(true))
		for _, h := range []*harness.Harness{serial, parallel} {
			So(h.Register("consistent", firstConsistent), ShouldBeNil)
			So(h.Register("broken", broken{}), ShouldBeNil)
		}

		Convey("When both are run", func() {
			a, errA := serial.Run(ctx)
			b, errB := parallel.Run(ctx)

			Convey("Then the records are identical", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a.Mode, ShouldEqual, harness.Serial)
				So(b.Mode, ShouldEqual, harness.Parallel)
				So(a.ID, ShouldNotEqual, b.ID)
				So(cmp.Diff(a.Records, b.Records), ShouldBeEmpty)
				So(a.Names, ShouldResemble, []string{"consistent", "broken"})
			})

			Convey("Then every answer appears once and in order", func() {
				rec, ok := a.Lookup("consistent")
				So(ok, ShouldBeTrue)
				So(rec.Words(), ShouldResemble, answers)
				So(rec.Summary().SolveRate, ShouldEqual, 1.0)
				So(rec.Validate(), ShouldBeNil)
			})

			Convey("Then strategy errors are contained in the record", func() {
				rec, ok := b.Lookup("broken")
				So(ok, ShouldBeTrue)
				So(rec.Strategy, ShouldEqual, "broken v0.0.1")
				So(rec.Version, ShouldEqual, "0.0.1")
				s := rec.Summary()
				So(s.StrategyErrors, ShouldEqual, len(answers))
				So(s.Solved, ShouldEqual, 0)
				So(rec.Outcomes[0].Error, ShouldContainSubstring, "strategy error")
			})

			Convey("Then unknown names are not found", func() {
				_, ok := a.Lookup("nobody")
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestRunEndToEnd(t *testing.T) {
	Convey("Given a two word corpus and a scripted strategy", t, func() {
		words := model.MustParseWords("crane", "trace")
		h := harness.New(harness.WithAnswers(words), harness.WithCorpusName("e2e"))
		So(h.Register("scripted", scripted{
			"crane": {"slate", "crane"},
			"trace": {"slate", "trace"},
		}), ShouldBeNil)

		res, err := h.Run(context.Background())

		Convey("Then both games are solved in two turns", func() {
			So(err, ShouldBeNil)
			rec := res.Records[0]
			So(rec.Outcomes[0].Status, ShouldEqual, model.StatusSolved)
			So(rec.Outcomes[0].Turns, ShouldEqual, 2)
			So(rec.Outcomes[1].Turns, ShouldEqual, 2)
			So(rec.Corpus.Name, ShouldEqual, "e2e")

			s := rec.Summary()
			So(s.SolveRate, ShouldEqual, 1.0)
			So(s.MeanTurns, ShouldEqual, 2.0)
		})
	})
}

func TestRunConfiguration(t *testing.T) {
	ctx := context.Background()

	Convey("Given a harness with no strategies", t, func() {
		res, err := newHarness(harness.Serial).Run(ctx)

		So(res, ShouldBeNil)
		So(errors.Is(err, harness.ErrNoStrategies), ShouldBeTrue)
	})

	Convey("Given a harness with no answers", t, func() {
		h := harness.New()
		So(h.Register("consistent", firstConsistent), ShouldBeNil)

		res, err := h.Run(ctx)

		So(res, ShouldBeNil)
		So(errors.Is(err, harness.ErrEmptyCorpus), ShouldBeTrue)
	})

	Convey("Given a selection of zero words", t, func() {
		h := newHarness(harness.Parallel, harness.WithSelection(harness.First(0)))
		So(h.Register("consistent", firstConsistent), ShouldBeNil)

		_, err := h.Run(ctx)

		So(errors.Is(err, harness.ErrEmptyCorpus), ShouldBeTrue)
	})

	Convey("Given answers that are not normalized words", t, func() {
		for _, bad := range [][]model.Word{{"CRANE"}, {"crane", "cran"}, {" slate"}} {
			h := harness.New(harness.WithAnswers(bad))
			So(h.Register("consistent", firstConsistent), ShouldBeNil)

			res, err := h.Run(ctx)

			So(res, ShouldBeNil)
			So(errors.Is(err, harness.ErrInvalidConfig), ShouldBeTrue)
		}
	})

	Convey("Given override answers or guesses that are not normalized", t, func() {
		h := newHarness(harness.Serial)
		So(h.Register("own", firstConsistent, harness.OverrideAnswers([]model.Word{"Spoon"})), ShouldBeNil)
		_, err := h.Run(ctx)
		So(errors.Is(err, harness.ErrInvalidConfig), ShouldBeTrue)

		h = newHarness(harness.Serial, harness.WithGuesses(model.NewWordList([]model.Word{"crane", "tra"})))
		So(h.Register("consistent", firstConsistent), ShouldBeNil)
		_, err = h.Run(ctx)
		So(errors.Is(err, harness.ErrInvalidConfig), ShouldBeTrue)
	})

	Convey("Given an invalid turn limit", t, func() {
		h := newHarness(harness.Serial, harness.WithMaxTurns(0))
		So(h.Register("consistent", firstConsistent), ShouldBeNil)

		_, err := h.Run(ctx)

		So(errors.Is(err, harness.ErrInvalidConfig), ShouldBeTrue)

		h = newHarness(harness.Serial, harness.WithMaxTurns(model.TurnLimit+1))
		So(h.Register("consistent", firstConsistent), ShouldBeNil)
		_, err = h.Run(ctx)
		So(errors.Is(err, harness.ErrInvalidConfig), ShouldBeTrue)
	})

	Convey("Given registrations", t, func() {
		h := newHarness(harness.Serial)
		So(h.Register("consistent", firstConsistent), ShouldBeNil)

		So(errors.Is(h.Register("consistent", broken{}), harness.ErrDuplicateStrategy), ShouldBeTrue)
		So(errors.Is(h.Register(" ", broken{}), harness.ErrInvalidConfig), ShouldBeTrue)
		So(errors.Is(h.Register("nil", nil), harness.ErrInvalidConfig), ShouldBeTrue)
		So(h.Strategies(), ShouldResemble, []string{"consistent"})
	})

	Convey("Given execution mode names", t, func() {
		m, err := harness.ParseExecutionMode(" Parallel ")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, harness.Parallel)

		_, err = harness.ParseExecutionMode("threads")
		So(errors.Is(err, harness.ErrInvalidConfig), ShouldBeTrue)
	})

	Convey("Given a canceled context", t, func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		h := newHarness(harness.Serial)
		So(h.Register("consistent", firstConsistent), ShouldBeNil)

		res, err := h.Run(cctx)

		So(res, ShouldBeNil)
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

func TestAnswerOverride(t *testing.T) {
	Convey("Given a strategy with its own answers", t, func() {
		own := model.MustParseWords("brake", "spoon")
		h := newHarness(harness.Serial)
		So(h.Register("shared", firstConsistent), ShouldBeNil)
		So(h.Register("own", firstConsistent, harness.OverrideAnswers(own)), ShouldBeNil)

		res, err := h.Run(context.Background())

		So(err, ShouldBeNil)
		shared, _ := res.Lookup("shared")
		mine, _ := res.Lookup("own")
		So(shared.Words(), ShouldHaveLength, len(answers))
		So(mine.Words(), ShouldResemble, own)
		So(mine.Corpus.Matches(shared.Corpus), ShouldBeFalse)
	})

	Convey("Given override answers missing from the guess list", t, func() {
		listed := model.MustParseWords("crane", "trace")
		own := model.MustParseWords("zesty", "quirk")
		always := strategy.Func(func(*model.WordList, model.Trace) string { return "zesty" })
		h := harness.New(harness.WithAnswers(listed), harness.WithGuesses(model.NewWordList(listed)))
		So(h.Register("always", always, harness.OverrideAnswers(own)), ShouldBeNil)
		So(h.Register("consistent", firstConsistent, harness.OverrideAnswers(own)), ShouldBeNil)

		res, err := h.Run(context.Background())
		So(err, ShouldBeNil)

		Convey("Then guessing the secret solves it in one turn", func() {
			rec, ok := res.Lookup("always")
			So(ok, ShouldBeTrue)
			So(rec.Outcomes[0], ShouldResemble, model.Outcome{Word: "zesty", Status: model.StatusSolved, Turns: 1})
			So(rec.Outcomes[1].Status, ShouldEqual, model.StatusFailed)
			So(rec.Summary().StrategyErrors, ShouldEqual, 0)
		})

		Convey("Then the strategy is handed its own answers", func() {
			rec, _ := res.Lookup("consistent")
			So(rec.Summary().Solved, ShouldEqual, 2)
		})
	})
}

func TestSelection(t *testing.T) {
	Convey("Given an answer list", t, func() {
		Convey("Then All and First keep the order", func() {
			So(harness.All().Apply(answers), ShouldResemble, answers)
			So(harness.First(3).Apply(answers), ShouldResemble, answers[:3])
			So(harness.First(100).Apply(answers), ShouldResemble, answers)
		})

		Convey("Then Random is reproducible for a seed", func() {
			a := harness.Random(5, 42).Apply(answers)
			b := harness.Random(5, 42).Apply(answers)

			So(a, ShouldHaveLength, 5)
			So(a, ShouldResemble, b)
			So(harness.Random(5, 42).String(), ShouldEqual, "random(5, seed=42)")
		})

		Convey("Then Random keeps the relative order of the picks", func() {
			picked := harness.Random(6, 7).Apply(answers)
			last := -1
			for _, w := range picked {
				idx := -1
				for i, a := range answers {
					if a == w {
						idx = i
					}
				}
				So(idx, ShouldBeGreaterThan, last)
				last = idx
			}
		})
	})
}

func TestBaselines(t *testing.T) {
	ctx := context.Background()

	Convey("Given a harness without a store", t, func() {
		h := newHarness(harness.Serial)

		_, err := h.LoadBaseline(ctx, baseline.Key{Strategy: "a", Tag: "b"})
		So(errors.Is(err, harness.ErrNoBaselineStore), ShouldBeTrue)
	})

	Convey("Given a harness backed by an in-memory store", t, func() {
		store, err := baseline.NewBadgerStore("", baseline.WithInMemory())
		So(err, ShouldBeNil)
		defer store.Close()

		h := newHarness(harness.Serial, harness.WithBaselineStore(store), harness.WithSignificance(0.01))
		So(h.Register("consistent", firstConsistent), ShouldBeNil)
		res, err := h.Run(ctx)
		So(err, ShouldBeNil)
		rec := res.Records[0]
		key := baseline.Key{Strategy: "consistent", Tag: baseline.DefaultTag}

		Convey("When the run is saved and compared against itself", func() {
			So(h.SaveBaseline(ctx, key, rec, false), ShouldBeNil)
			cmpRes, err := h.Compare(ctx, rec, key)

			Convey("Then there is no significant change", func() {
				So(err, ShouldBeNil)
				So(cmpRes.Alpha, ShouldEqual, 0.01)
				So(cmpRes.Verdict, ShouldEqual, stats.VerdictNoChange)
			})
		})

		Convey("When the baseline is missing", func() {
			_, err := h.Compare(ctx, rec, key)

			So(errors.Is(err, baseline.ErrBaselineNotFound), ShouldBeTrue)
		})
	})
}
