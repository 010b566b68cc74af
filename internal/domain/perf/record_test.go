package perf_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/wordlebench/internal/domain/model"
	"github.com/okian/wordlebench/internal/domain/perf"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleRecord() *perf.Record {
	words := []model.Word{"crane", "trace", "slate", "adieu"}
	return perf.NewRecord("basic v0.1.1", "0.1.1", true, perf.NewCorpus("sample", words), 6, []model.Outcome{
		{Word: "crane", Status: model.StatusSolved, Turns: 2},
		{Word: "trace", Status: model.StatusSolved, Turns: 4},
		{Word: "slate", Status: model.StatusFailed, Turns: 6},
		{Word: "adieu", Status: model.StatusStrategyError, Turns: 1, Error: "strategy error: boom"},
	})
}

func TestSummary(t *testing.T) {
	Convey("Given a record with mixed outcomes", t, func() {
		rec := sampleRecord()

		Convey("When summarised", func() {
			s := rec.Summary()

			Convey("Then counts and rates are derived", func() {
				So(s.Total, ShouldEqual, 4)
				So(s.Solved, ShouldEqual, 2)
				So(s.Failed, ShouldEqual, 2)
				So(s.StrategyErrors, ShouldEqual, 1)
				So(s.SolveRate, ShouldEqual, 0.5)
				So(s.MeanTurns, ShouldEqual, 3.0)
				So(s.MedianTurns, ShouldEqual, 3.0)
				So(s.Histogram, ShouldResemble, []int{0, 1, 0, 1, 0, 0})
				So(s.CumulativeGuesses, ShouldEqual, 13)
			})
		})

		Convey("Then ranks put failures past the limit", func() {
			So(rec.Ranks(), ShouldResemble, []float64{2, 4, 7, 7})
			So(rec.SolvedTurns(), ShouldResemble, []float64{2, 4})
		})
	})

	Convey("Given the two word end-to-end record", t, func() {
		words := []model.Word{"crane", "trace"}
		rec := perf.NewRecord("scripted", "", false, perf.NewCorpus("", words), 6, []model.Outcome{
			{Word: "crane", Status: model.StatusSolved, Turns: 2},
			{Word: "trace", Status: model.StatusSolved, Turns: 2},
		})

		s := rec.Summary()
		So(s.SolveRate, ShouldEqual, 1.0)
		So(s.MeanTurns, ShouldEqual, 2.0)
	})

	Convey("Given an empty record", t, func() {
		rec := perf.NewRecord("none", "", false, perf.NewCorpus("", nil), 6, nil)

		s := rec.Summary()
		So(s.Total, ShouldEqual, 0)
		So(s.SolveRate, ShouldEqual, 0)
		So(s.MeanTurns, ShouldEqual, 0)
	})
}

func TestValidate(t *testing.T) {
	Convey("Given a well formed record", t, func() {
		rec := sampleRecord()
		So(rec.Validate(), ShouldBeNil)

		Convey("When the format version is wrong", func() {
			rec.FormatVersion = 99
			So(errors.Is(rec.Validate(), perf.ErrInvalidRecord), ShouldBeTrue)
		})

		Convey("When an outcome word no longer matches the fingerprint", func() {
			rec.Outcomes[0].Word = "zebra"
			So(errors.Is(rec.Validate(), perf.ErrInvalidRecord), ShouldBeTrue)
		})

		Convey("When an outcome exceeds the turn limit", func() {
			rec.Outcomes[1].Turns = 9
			So(errors.Is(rec.Validate(), perf.ErrInvalidRecord), ShouldBeTrue)
		})

		Convey("When an outcome has an unknown status", func() {
			rec.Outcomes[2].Status = "won"
			So(errors.Is(rec.Validate(), perf.ErrInvalidRecord), ShouldBeTrue)
		})

		Convey("When the turn limit is out of bounds", func() {
			rec.MaxTurns = 2_000_000_000
			So(errors.Is(rec.Validate(), perf.ErrInvalidRecord), ShouldBeTrue)
		})

		Convey("When a trace entry has short feedback", func() {
			rec.Outcomes[0].Trace = model.Trace{{Guess: "crane", Feedback: model.Feedback{model.Correct}}}
			So(errors.Is(rec.Validate(), perf.ErrInvalidRecord), ShouldBeTrue)
		})

		Convey("When a trace is longer than the turn limit", func() {
			guess := model.GuessRecord{Guess: "slate", Feedback: model.Feedback{model.Absent, model.Absent, model.Absent, model.Absent, model.Absent}}
			rec.Outcomes[2].Trace = model.Trace{guess, guess, guess, guess, guess, guess, guess}
			So(errors.Is(rec.Validate(), perf.ErrInvalidRecord), ShouldBeTrue)
		})
	})

	Convey("Given records over words that are not normalized", t, func() {
		for _, w := range []model.Word{"CRANE", " crane", "crane\n"} {
			words := []model.Word{w}
			rec := perf.NewRecord("basic", "", false, perf.NewCorpus("raw", words), 6, []model.Outcome{
				{Word: w, Status: model.StatusFailed, Turns: 6},
			})

			err := rec.Validate()

			So(errors.Is(err, perf.ErrInvalidRecord), ShouldBeTrue)
			So(errors.Is(err, model.ErrInvalidWord), ShouldBeTrue)
		}
	})
}

func TestCorpus(t *testing.T) {
	Convey("Given corpora built from word lists", t, func() {
		a := perf.NewCorpus("a", []model.Word{"crane", "trace"})
		b := perf.NewCorpus("b", []model.Word{"crane", "trace"})
		swapped := perf.NewCorpus("a", []model.Word{"trace", "crane"})

		Convey("Then identity ignores the name but not the order", func() {
			So(a.Matches(b), ShouldBeTrue)
			So(a.Matches(swapped), ShouldBeFalse)
			So(a.Fingerprint, ShouldHaveLength, 64)
		})

		Convey("Then SameCorpus compares records", func() {
			rec := sampleRecord()
			copied := sampleRecord()
			So(perf.SameCorpus(rec, copied), ShouldBeTrue)

			copied.Corpus = a
			So(perf.SameCorpus(rec, copied), ShouldBeFalse)
		})
	})
}

func TestRecordJSONRoundTrip(t *testing.T) {
	Convey("Given a record with a retained trace", t, func() {
		rec := sampleRecord()
		rec.Outcomes[0].Trace = model.Trace{
			{Guess: "slate", Feedback: model.Feedback{model.Absent, model.Absent, model.Correct, model.Absent, model.Correct}},
			{Guess: "crane", Feedback: model.Feedback{model.Correct, model.Correct, model.Correct, model.Correct, model.Correct}},
		}

		Convey("When encoded and decoded", func() {
			data, err := json.Marshal(rec)
			So(err, ShouldBeNil)

			var back perf.Record
			So(json.Unmarshal(data, &back), ShouldBeNil)

			Convey("Then every field survives", func() {
				So(cmp.Diff(rec, &back), ShouldBeEmpty)
				So(back.Validate(), ShouldBeNil)
			})
		})
	})
}
