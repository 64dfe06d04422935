package scoring_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hireloop/evalboard/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

// mapSource resolves correct options from a plain map.
type mapSource struct {
	correct map[int]int
	err     error
}

func (m *mapSource) CorrectOptionID(_ context.Context, questionID int) (int, bool, error) {
	if m.err != nil {
		return 0, false, m.err
	}
	id, ok := m.correct[questionID]
	return id, ok, nil
}

func ptr(v int) *int { return &v }

func TestGrader_Grade(t *testing.T) {
	Convey("Given a grader over a question with options 3 (incorrect) and 4 (correct)", t, func() {
		// "Math Basics": question 1 ("2+2?") has option 10 ("3") and option 11 ("4").
		grader := scoring.NewGrader(&mapSource{correct: map[int]int{1: 11}})
		ctx := context.Background()

		Convey("When the correct option is selected", func() {
			res, err := grader.Grade(ctx, []scoring.Answer{{QuestionID: 1, SelectedOptionID: ptr(11)}})

			Convey("Then the score is 1 of 1", func() {
				So(err, ShouldBeNil)
				So(res.Score, ShouldEqual, 1)
				So(res.Total, ShouldEqual, 1)
			})
		})

		Convey("When the incorrect option is selected", func() {
			res, err := grader.Grade(ctx, []scoring.Answer{{QuestionID: 1, SelectedOptionID: ptr(10)}})

			Convey("Then the score is 0 of 1", func() {
				So(err, ShouldBeNil)
				So(res.Score, ShouldEqual, 0)
				So(res.Total, ShouldEqual, 1)
			})
		})

		Convey("When no option is selected", func() {
			res, err := grader.Grade(ctx, []scoring.Answer{{QuestionID: 1}})

			Convey("Then the unanswered pair never matches and never errors", func() {
				So(err, ShouldBeNil)
				So(res.Score, ShouldEqual, 0)
				So(res.Total, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a grader over several questions", t, func() {
		grader := scoring.NewGrader(&mapSource{correct: map[int]int{1: 11, 2: 21, 3: 31}})
		ctx := context.Background()
		answers := []scoring.Answer{
			{QuestionID: 1, SelectedOptionID: ptr(11)},
			{QuestionID: 2, SelectedOptionID: ptr(22)},
			{QuestionID: 3, SelectedOptionID: ptr(31)},
		}

		Convey("When grading a mixed submission", func() {
			res, err := grader.Grade(ctx, answers)

			Convey("Then the score is bounded by the total", func() {
				So(err, ShouldBeNil)
				So(res.Score, ShouldEqual, 2)
				So(res.Total, ShouldEqual, 3)
				So(res.Score, ShouldBeLessThanOrEqualTo, res.Total)
			})
		})

		Convey("When the same answers arrive in a different order", func() {
			permuted := []scoring.Answer{answers[2], answers[0], answers[1]}
			a, errA := grader.Grade(ctx, answers)
			b, errB := grader.Grade(ctx, permuted)

			Convey("Then the score is invariant under permutation", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a, ShouldResemble, b)
			})
		})

		Convey("When every question is left unanswered", func() {
			res, err := grader.Grade(ctx, []scoring.Answer{
				{QuestionID: 1}, {QuestionID: 2}, {QuestionID: 3},
			})

			Convey("Then the score is zero", func() {
				So(err, ShouldBeNil)
				So(res.Score, ShouldEqual, 0)
				So(res.Total, ShouldEqual, 3)
			})
		})
	})

	Convey("Given a question with no option flagged correct", t, func() {
		grader := scoring.NewGrader(&mapSource{correct: map[int]int{}})
		ctx := context.Background()

		Convey("When any option is submitted for it", func() {
			res, err := grader.Grade(ctx, []scoring.Answer{{QuestionID: 9, SelectedOptionID: ptr(90)}})

			Convey("Then it can never increase the score", func() {
				So(err, ShouldBeNil)
				So(res.Score, ShouldEqual, 0)
				So(res.Total, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a question id that does not belong to the evaluation", t, func() {
		grader := scoring.NewGrader(&mapSource{correct: map[int]int{1: 11}})
		ctx := context.Background()

		Convey("When it appears in the submission", func() {
			res, err := grader.Grade(ctx, []scoring.Answer{
				{QuestionID: 1, SelectedOptionID: ptr(11)},
				{QuestionID: 999, SelectedOptionID: ptr(11)},
			})

			Convey("Then it is ignored by the matching scan", func() {
				So(err, ShouldBeNil)
				So(res.Score, ShouldEqual, 1)
				So(res.Total, ShouldEqual, 2)
			})
		})
	})

	Convey("Given a failing option source", t, func() {
		grader := scoring.NewGrader(&mapSource{err: errors.New("store offline")})

		Convey("When grading an answered submission", func() {
			_, err := grader.Grade(context.Background(), []scoring.Answer{{QuestionID: 1, SelectedOptionID: ptr(1)}})

			Convey("Then the error is surfaced", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
