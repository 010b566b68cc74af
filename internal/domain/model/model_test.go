package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	model "github.com/okian/wordlebench/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseWord(t *testing.T) {
	convey.Convey("Given raw word input", t, func() {
		convey.Convey("When the word is well formed but padded and upper case", func() {
			w, err := model.ParseWord("  CRANE ")

			convey.Convey("Then it is normalized", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(w, convey.ShouldEqual, model.Word("crane"))
			})
		})

		convey.Convey("When the word has the wrong length", func() {
			_, err := model.ParseWord("cranes")

			convey.Convey("Then ErrInvalidWord is returned", func() {
				convey.So(errors.Is(err, model.ErrInvalidWord), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the word contains non letters", func() {
			_, err := model.ParseWord("cr4ne")

			convey.Convey("Then ErrInvalidWord is returned", func() {
				convey.So(errors.Is(err, model.ErrInvalidWord), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When MustParseWord is given garbage", func() {
			convey.So(func() { model.MustParseWord("??") }, convey.ShouldPanic)
			convey.So(model.MustParseWords("Crane", "trace"), convey.ShouldResemble, []model.Word{"crane", "trace"})
		})
	})
}

func TestWordList(t *testing.T) {
	convey.Convey("Given an unsorted list with duplicates", t, func() {
		list, err := model.ParseWordList([]string{"trace", "crane", "TRACE", "adieu"})
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then it is sorted and de-duplicated", func() {
			convey.So(list.Len(), convey.ShouldEqual, 3)
			convey.So(list.Words(), convey.ShouldResemble, []model.Word{"adieu", "crane", "trace"})
			convey.So(list.At(0), convey.ShouldEqual, model.Word("adieu"))
		})

		convey.Convey("Then membership is answered", func() {
			convey.So(list.Contains("crane"), convey.ShouldBeTrue)
			convey.So(list.Contains("slate"), convey.ShouldBeFalse)
		})

		convey.Convey("Then All iterates in order and honours early exit", func() {
			var seen []model.Word
			for i, w := range list.All() {
				seen = append(seen, w)
				if i == 1 {
					break
				}
			}
			convey.So(seen, convey.ShouldResemble, []model.Word{"adieu", "crane"})
		})
	})

	convey.Convey("Given a nil list", t, func() {
		var list *model.WordList

		convey.So(list.Len(), convey.ShouldEqual, 0)
		convey.So(list.Contains("crane"), convey.ShouldBeFalse)
		convey.So(list.Words(), convey.ShouldBeNil)
	})

	convey.Convey("Given a list with a bad entry", t, func() {
		_, err := model.ParseWordList([]string{"crane", "toolong"})

		convey.So(errors.Is(err, model.ErrInvalidWord), convey.ShouldBeTrue)
	})
}

func TestFeedback(t *testing.T) {
	convey.Convey("Given a feedback", t, func() {
		fb := model.Feedback{model.Correct, model.Present, model.Absent, model.Absent, model.Correct}

		convey.Convey("When rendered", func() {
			convey.So(fb.String(), convey.ShouldEqual, "GY..G")
			convey.So(fb.Solved(), convey.ShouldBeFalse)
		})

		convey.Convey("When encoded as JSON", func() {
			data, err := json.Marshal(model.GuessRecord{Guess: "crane", Feedback: fb})
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(data), convey.ShouldEqual, `{"guess":"crane","feedback":"GY..G"}`)

			var back model.GuessRecord
			convey.So(json.Unmarshal(data, &back), convey.ShouldBeNil)
			convey.So(back.Feedback.Equal(fb), convey.ShouldBeTrue)
		})

		convey.Convey("When parsing an unknown symbol", func() {
			_, err := model.ParseFeedback("GGXGG")

			convey.So(errors.Is(err, model.ErrInvalidFeedback), convey.ShouldBeTrue)
		})

		convey.Convey("When every position is correct", func() {
			all, err := model.ParseFeedback("GGGGG")

			convey.So(err, convey.ShouldBeNil)
			convey.So(all.Solved(), convey.ShouldBeTrue)
			convey.So(model.Feedback{}.Solved(), convey.ShouldBeFalse)
		})
	})
}

func TestOutcomeRank(t *testing.T) {
	convey.Convey("Given outcomes of each status", t, func() {
		solved := model.Outcome{Word: "crane", Status: model.StatusSolved, Turns: 3}
		failed := model.Outcome{Word: "crane", Status: model.StatusFailed, Turns: 6}
		broken := model.Outcome{Word: "crane", Status: model.StatusStrategyError, Turns: 1, Error: "bad guess"}

		convey.Convey("Then failures rank past the turn limit", func() {
			convey.So(solved.Rank(6), convey.ShouldEqual, 3)
			convey.So(failed.Rank(6), convey.ShouldEqual, 7)
			convey.So(broken.Rank(6), convey.ShouldEqual, 7)
		})

		convey.Convey("Then only known statuses are valid", func() {
			convey.So(model.StatusStrategyError.Valid(), convey.ShouldBeTrue)
			convey.So(model.Status("won").Valid(), convey.ShouldBeFalse)
		})
	})
}
