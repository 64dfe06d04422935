package repository_test

import (
	"context"
	"testing"
	"time"

	repository "github.com/hireloop/evalboard/internal/adapters/repository"
	"github.com/hireloop/evalboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func seedEvaluation(ctx context.Context, store *repository.MemStore, title string) model.Evaluation {
	e := model.Evaluation{
		Title:           title,
		Description:     "desc",
		DurationMinutes: 30,
		CreatedAt:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Questions: []model.Question{
			{
				Text: "2+2?", Type: "single", Points: 1,
				Options: []model.AnswerOption{
					{Text: "3", IsCorrect: false},
					{Text: "4", IsCorrect: true},
				},
			},
		},
	}
	So(store.CreateEvaluation(ctx, &e), ShouldBeNil)
	return e
}

func TestMemStore_Evaluations(t *testing.T) {
	Convey("Given an in-memory store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		Convey("When creating an evaluation with a question graph", func() {
			e := seedEvaluation(ctx, store, "Math Basics")

			Convey("Then ids are assigned through the graph", func() {
				So(e.ID, ShouldBeGreaterThan, 0)
				So(e.Questions[0].ID, ShouldBeGreaterThan, 0)
				So(e.Questions[0].EvaluationID, ShouldEqual, e.ID)
				So(e.Questions[0].Options[1].QuestionID, ShouldEqual, e.Questions[0].ID)
			})

			Convey("And the summary read omits the nested graph", func() {
				got, err := store.Evaluation(ctx, e.ID)
				So(err, ShouldBeNil)
				So(got.Title, ShouldEqual, "Math Basics")
				So(got.Questions, ShouldBeEmpty)
			})

			Convey("And the full read loads questions with options", func() {
				got, err := store.EvaluationFull(ctx, e.ID)
				So(err, ShouldBeNil)
				So(got.Questions, ShouldHaveLength, 1)
				So(got.Questions[0].Options, ShouldHaveLength, 2)
			})

			Convey("And the correct option is found by question id", func() {
				id, ok, err := store.CorrectOptionID(ctx, e.Questions[0].ID)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(id, ShouldEqual, e.Questions[0].Options[1].ID)
			})

			Convey("And an unknown question finds no correct option", func() {
				_, ok, err := store.CorrectOptionID(ctx, 9999)
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When updating an evaluation", func() {
			e := seedEvaluation(ctx, store, "Old Title")
			e.Title = "New Title"
			e.Questions = nil

			Convey("Then allow-listed fields are written", func() {
				So(store.UpdateEvaluation(ctx, &e), ShouldBeNil)
				got, err := store.Evaluation(ctx, e.ID)
				So(err, ShouldBeNil)
				So(got.Title, ShouldEqual, "New Title")

				full, err := store.EvaluationFull(ctx, e.ID)
				So(err, ShouldBeNil)
				So(full.Questions, ShouldHaveLength, 1) // graph untouched
			})

			Convey("And updating a vanished row reports not found", func() {
				gone := model.Evaluation{ID: 404, Title: "x"}
				So(store.UpdateEvaluation(ctx, &gone), ShouldEqual, repository.ErrNotFound)
			})
		})

		Convey("When deleting evaluations", func() {
			e := seedEvaluation(ctx, store, "Doomed")

			Convey("Then an existing row is removed", func() {
				So(store.DeleteEvaluation(ctx, e.ID), ShouldBeNil)
				_, err := store.Evaluation(ctx, e.ID)
				So(err, ShouldEqual, repository.ErrNotFound)
			})

			Convey("And deleting a non-existent id is a success no-op", func() {
				before, _ := store.ListEvaluations(ctx)
				So(store.DeleteEvaluation(ctx, 424242), ShouldBeNil)
				after, _ := store.ListEvaluations(ctx)
				So(len(after), ShouldEqual, len(before))
			})
		})
	})
}

func TestMemStore_CandidatesAndAttempts(t *testing.T) {
	Convey("Given an in-memory store with candidates and attempts", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		e := seedEvaluation(ctx, store, "Math Basics")

		jane := model.Candidate{LastName: "Doe", FirstName: "Jane", Email: "jane@x.com", UserID: "u-1"}
		So(store.CreateCandidate(ctx, &jane), ShouldBeNil)

		Convey("When looking up candidates", func() {
			Convey("Then lookup by identity id succeeds", func() {
				got, err := store.CandidateByUserID(ctx, "u-1")
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, jane.ID)
			})

			Convey("And lookup by email succeeds", func() {
				got, err := store.CandidateByEmail(ctx, "jane@x.com")
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, jane.ID)
			})

			Convey("And empty keys never match", func() {
				_, err := store.CandidateByUserID(ctx, "")
				So(err, ShouldEqual, repository.ErrNotFound)
				_, err = store.CandidateByEmail(ctx, "")
				So(err, ShouldEqual, repository.ErrNotFound)
			})
		})

		Convey("When recording attempts", func() {
			day := func(d, score int) model.Attempt {
				return model.Attempt{
					CandidateID:  jane.ID,
					EvaluationID: e.ID,
					TakenAt:      time.Date(2024, 3, d, 10, 0, 0, 0, time.UTC),
					Score:        score,
				}
			}
			for _, a := range []model.Attempt{day(1, 6), day(2, 8), day(3, 0), day(4, 0), day(5, 0)} {
				attempt := a
				So(store.CreateAttempt(ctx, &attempt), ShouldBeNil)
			}

			Convey("Then completed and pending counts split on score", func() {
				completed, err := store.CountCompletedAttempts(ctx)
				So(err, ShouldBeNil)
				So(completed, ShouldEqual, 2)

				pending, err := store.CountPendingAttempts(ctx)
				So(err, ShouldBeNil)
				So(pending, ShouldEqual, 3)
			})

			Convey("And the completed average is computed over scores 6 and 8", func() {
				avg, err := store.AverageCompletedScore(ctx)
				So(err, ShouldBeNil)
				So(avg, ShouldEqual, 7.0)
			})

			Convey("And the since filter bounds the weekly count", func() {
				n, err := store.CountCompletedAttemptsSince(ctx, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})

			Convey("And recent attempts come back joined and ordered", func() {
				out, err := store.RecentAttempts(ctx, repository.AttemptQuery{Limit: 10})
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 5)
				So(out[0].TakenAt.After(out[1].TakenAt), ShouldBeTrue)
				So(out[0].Candidate, ShouldNotBeNil)
				So(out[0].Candidate.LastName, ShouldEqual, "Doe")
				So(out[0].Evaluation, ShouldNotBeNil)
				So(out[0].Evaluation.Title, ShouldEqual, "Math Basics")
			})

			Convey("And the search filter matches name or title, case-insensitively", func() {
				byName, err := store.RecentAttempts(ctx, repository.AttemptQuery{Search: "doe", Limit: 10})
				So(err, ShouldBeNil)
				So(byName, ShouldHaveLength, 5)

				byTitle, err := store.RecentAttempts(ctx, repository.AttemptQuery{Search: "math", Limit: 10})
				So(err, ShouldBeNil)
				So(byTitle, ShouldHaveLength, 5)

				none, err := store.RecentAttempts(ctx, repository.AttemptQuery{Search: "zzz", Limit: 10})
				So(err, ShouldBeNil)
				So(none, ShouldBeEmpty)

				caseSensitive, err := store.RecentAttempts(ctx, repository.AttemptQuery{Search: "DOE", CaseSensitive: true, Limit: 10})
				So(err, ShouldBeNil)
				So(caseSensitive, ShouldBeEmpty)
			})

			Convey("And attempts for the candidate include evaluation titles", func() {
				out, err := store.AttemptsForCandidate(ctx, jane.ID)
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 5)
				So(out[0].Evaluation.Title, ShouldEqual, "Math Basics")
			})
		})

		Convey("When scheduling interviews", func() {
			for d := 1; d <= 7; d++ {
				iv := model.Interview{
					CandidateID: jane.ID,
					ScheduledAt: time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC),
					CreatedAt:   time.Date(2024, 3, d, 9, 0, 0, 0, time.UTC),
				}
				So(store.CreateInterview(ctx, &iv), ShouldBeNil)
			}

			Convey("Then the recent list is bounded and newest-first", func() {
				out, err := store.RecentInterviews(ctx, 5)
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 5)
				So(out[0].CreatedAt.After(out[1].CreatedAt), ShouldBeTrue)
				So(out[0].Candidate, ShouldNotBeNil)
				So(out[0].Candidate.FullName(), ShouldEqual, "Jane Doe")
			})
		})
	})
}
