package service

import (
	"context"
	"sort"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/edusys/school-api/internal/domain/grading"
	"github.com/edusys/school-api/internal/domain/repository"
	infraRepo "github.com/edusys/school-api/internal/infrastructure/repository"
	"github.com/edusys/school-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportCardService aggregates marks into report cards
type ReportCardService struct {
	examRepo       repository.ExamRepository
	markRepo       repository.MarkRepository
	reportCardRepo repository.ReportCardRepository
	txManager      repository.TxManager
}

// NewReportCardService creates a new report card service
func NewReportCardService(
	examRepo repository.ExamRepository,
	markRepo repository.MarkRepository,
	reportCardRepo repository.ReportCardRepository,
	txManager repository.TxManager,
) *ReportCardService {
	return &ReportCardService{
		examRepo:       examRepo,
		markRepo:       markRepo,
		reportCardRepo: reportCardRepo,
		txManager:      txManager,
	}
}

// Generate recomputes the report cards for every student with marks in
// the exam. The exam row is locked and the marks are read inside the
// same transaction that replaces the cohort, so concurrent regenerations
// serialize instead of racing each other with stale snapshots, and
// readers never see a partial batch.
//
// An absent subject contributes its max marks to the denominator but
// nothing to the numerator, so absence drags the percentage down rather
// than vanishing from it. Ranks are ordered by percentage descending;
// equal percentages are broken by student ID so reruns over the same
// marks always produce the same ordering.
func (s *ReportCardService) Generate(ctx context.Context, examID uuid.UUID) ([]entity.ReportCard, error) {
	schoolID, ok := infraRepo.GetSchoolID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("School context required")
	}

	var cards []entity.ReportCard
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		exam, err := s.examRepo.GetByIDForUpdate(ctx, examID)
		if err != nil {
			return err
		}
		if exam == nil {
			return apperror.NewNotFoundError("Exam")
		}

		marks, err := s.markRepo.ListByExam(ctx, examID)
		if err != nil {
			return err
		}
		if len(marks) == 0 {
			return apperror.NewInvalidStateError("No marks uploaded for this exam")
		}

		type totals struct {
			obtained decimal.Decimal
			max      decimal.Decimal
		}
		byStudent := make(map[uuid.UUID]*totals)
		for _, mark := range marks {
			t, ok := byStudent[mark.StudentID]
			if !ok {
				t = &totals{}
				byStudent[mark.StudentID] = t
			}
			if mark.MarksObtained != nil && !mark.IsAbsent {
				t.obtained = t.obtained.Add(*mark.MarksObtained)
			}
			if mark.MaxMarks != nil {
				t.max = t.max.Add(*mark.MaxMarks)
			}
		}

		cards = make([]entity.ReportCard, 0, len(byStudent))
		for studentID, t := range byStudent {
			pct := grading.Percentage(t.obtained, t.max)
			cards = append(cards, entity.ReportCard{
				SchoolID:           schoolID,
				ExamID:             examID,
				StudentID:          studentID,
				TotalMarksObtained: t.obtained,
				TotalMaxMarks:      t.max,
				Percentage:         pct,
				Grade:              grading.ComputeGrade(pct.InexactFloat64()),
			})
		}

		sort.Slice(cards, func(i, j int) bool {
			cmp := cards[i].Percentage.Cmp(cards[j].Percentage)
			if cmp != 0 {
				return cmp > 0
			}
			return cards[i].StudentID.String() < cards[j].StudentID.String()
		})
		for i := range cards {
			cards[i].Rank = i + 1
			cards[i].IsPublished = exam.IsPublished
		}

		return s.reportCardRepo.ReplaceForExam(ctx, examID, cards)
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// GetStudentReportCard retrieves one student's report card for an exam
func (s *ReportCardService) GetStudentReportCard(ctx context.Context, examID, studentID uuid.UUID) (*entity.ReportCard, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, apperror.NewNotFoundError("Exam")
	}

	card, err := s.reportCardRepo.GetByExamAndStudent(ctx, examID, studentID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.NewNotFoundError("Report card")
	}
	return card, nil
}

// ListByExam lists all report cards for an exam in rank order
func (s *ReportCardService) ListByExam(ctx context.Context, examID uuid.UUID) ([]entity.ReportCard, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, apperror.NewNotFoundError("Exam")
	}
	return s.reportCardRepo.ListByExam(ctx, examID)
}

// Publish marks the exam's report cards visible. Requires a generated
// cohort; publishing before generation has nothing to expose.
func (s *ReportCardService) Publish(ctx context.Context, examID uuid.UUID) error {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return err
	}
	if exam == nil {
		return apperror.NewNotFoundError("Exam")
	}

	cards, err := s.reportCardRepo.ListByExam(ctx, examID)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		return apperror.NewInvalidStateError("No report cards generated for this exam")
	}

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.reportCardRepo.PublishByExam(ctx, examID); err != nil {
			return err
		}
		exam.IsPublished = true
		return s.examRepo.Update(ctx, exam)
	})
}
