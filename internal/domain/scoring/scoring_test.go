package scoring_test

import (
	"errors"
	"testing"

	"github.com/okian/wordlebench/internal/domain/model"
	scoring "github.com/okian/wordlebench/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScore(t *testing.T) {
	Convey("Given the feedback engine", t, func() {
		Convey("When a word is scored against itself", func() {
			for _, w := range []model.Word{"crane", "abbey", "eerie", "zzzzz"} {
				fb, err := scoring.Score(w, w)

				So(err, ShouldBeNil)
				So(fb.String(), ShouldEqual, "GGGGG")
				So(fb.Solved(), ShouldBeTrue)
			}
		})

		Convey("When the guess shares no letters with the secret", func() {
			fb, err := scoring.Score("crane", "fluty")

			Convey("Then every position is absent", func() {
				So(err, ShouldBeNil)
				So(fb.String(), ShouldEqual, ".....")
			})
		})

		Convey("When duplicate letters compete for the same secret letter", func() {
			// secret ABBA, guess AABB
			fb, err := scoring.Score("aabb", "abba")

			Convey("Then exact matches win and earlier positions get present first", func() {
				So(err, ShouldBeNil)
				So(fb, ShouldResemble, model.Feedback{model.Correct, model.Present, model.Correct, model.Present})
			})
		})

		Convey("When scoring the classic duplicate cases", func() {
			cases := []struct {
				secret, guess model.Word
				want          string
			}{
				{"sober", "spool", "G.Y.."},
				{"sober", "soaks", "GG..."},
				{"spoon", "odors", "Y.G.Y"},
				{"abbey", "babes", "YYGG."},
				{"crane", "eerie", "..Y.G"},
				{"crane", "slate", "..G.G"},
				{"trace", "crane", "YGG.G"},
			}
			for _, c := range cases {
				fb, err := scoring.Score(c.guess, c.secret)

				So(err, ShouldBeNil)
				So(fb.String(), ShouldEqual, c.want)
			}
		})

		Convey("When guess and secret differ in length", func() {
			fb, err := scoring.Score("abc", "abcd")

			Convey("Then ErrLengthMismatch is returned", func() {
				So(fb, ShouldBeNil)
				So(errors.Is(err, scoring.ErrLengthMismatch), ShouldBeTrue)
			})
		})
	})
}

func TestConsistent(t *testing.T) {
	Convey("Given a trace against the secret crane", t, func() {
		fb, err := scoring.Score("slate", "crane")
		So(err, ShouldBeNil)
		trace := model.Trace{{Guess: "slate", Feedback: fb}}

		Convey("Then the secret itself is consistent", func() {
			So(scoring.Consistent("crane", trace), ShouldBeTrue)
		})

		Convey("Then a word contradicting the feedback is not", func() {
			So(scoring.Consistent("trace", trace), ShouldBeFalse)
			So(scoring.Consistent("slate", trace), ShouldBeFalse)
		})

		Convey("Then an empty trace admits anything", func() {
			So(scoring.Consistent("zzzzz", nil), ShouldBeTrue)
		})
	})
}

func TestFollowsHints(t *testing.T) {
	Convey("Given a trace where slate scored against crane", t, func() {
		fb, err := scoring.Score("slate", "crane")
		So(err, ShouldBeNil)
		trace := model.Trace{{Guess: "slate", Feedback: fb}}

		Convey("Then guesses keeping the green letters pass", func() {
			So(scoring.FollowsHints("crane", trace), ShouldBeTrue)
			So(scoring.FollowsHints("brake", trace), ShouldBeTrue)
		})

		Convey("Then moving a green letter fails", func() {
			So(scoring.FollowsHints("adieu", trace), ShouldBeFalse)
		})
	})

	Convey("Given a trace with a present letter", t, func() {
		fb, err := scoring.Score("odors", "spoon")
		So(err, ShouldBeNil)
		trace := model.Trace{{Guess: "odors", Feedback: fb}}

		Convey("Then the present letters must be reused", func() {
			So(scoring.FollowsHints("spoon", trace), ShouldBeTrue)
			So(scoring.FollowsHints("proof", trace), ShouldBeFalse)
		})
	})
}
