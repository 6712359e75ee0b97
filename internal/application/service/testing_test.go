package service

import (
	"context"
	"sort"
	"time"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/edusys/school-api/internal/domain/repository"
	infraRepo "github.com/edusys/school-api/internal/infrastructure/repository"
	"github.com/edusys/school-api/pkg/pagination"
	"github.com/google/uuid"
)

// In-memory repository fakes shared by the service tests. They mirror the
// GORM implementations' contracts: not-found lookups return (nil, nil),
// Create assigns an ID when missing, and reads hand out copies so a
// caller's mutation only sticks after an explicit Update.

func schoolCtx(schoolID uuid.UUID) context.Context {
	return infraRepo.WithSchool(context.Background(), schoolID)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSchoolRepo struct {
	schools map[uuid.UUID]*entity.School
}

func newFakeSchoolRepo(schools ...*entity.School) *fakeSchoolRepo {
	r := &fakeSchoolRepo{schools: make(map[uuid.UUID]*entity.School)}
	for _, s := range schools {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.schools[s.ID] = s
	}
	return r
}

func (r *fakeSchoolRepo) Create(ctx context.Context, school *entity.School) error {
	if school.ID == uuid.Nil {
		school.ID = uuid.New()
	}
	r.schools[school.ID] = school
	return nil
}

func (r *fakeSchoolRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.School, error) {
	return r.schools[id], nil
}

func (r *fakeSchoolRepo) GetByCode(ctx context.Context, code int) (*entity.School, error) {
	for _, s := range r.schools {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSchoolRepo) List(ctx context.Context) ([]entity.School, error) {
	out := make([]entity.School, 0, len(r.schools))
	for _, s := range r.schools {
		out = append(out, *s)
	}
	return out, nil
}

type fakeStudentRepo struct {
	students map[uuid.UUID]*entity.Student
}

func newFakeStudentRepo(students ...*entity.Student) *fakeStudentRepo {
	r := &fakeStudentRepo{students: make(map[uuid.UUID]*entity.Student)}
	for _, s := range students {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.students[s.ID] = s
	}
	return r
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *entity.Student) error {
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	return r.students[id], nil
}

func (r *fakeStudentRepo) GetByAdmissionNo(ctx context.Context, admissionNo string) (*entity.Student, error) {
	for _, s := range r.students {
		if s.AdmissionNo == admissionNo {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeStudentRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Student, error) {
	out := make([]entity.Student, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.students[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *entity.Student) error {
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.students, id)
	return nil
}

func (r *fakeStudentRepo) List(ctx context.Context, params *repository.StudentFilterParams) ([]entity.Student, int64, error) {
	out := make([]entity.Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

type fakeYearRepo struct {
	years map[uuid.UUID]*entity.AcademicYear
}

func newFakeYearRepo(years ...*entity.AcademicYear) *fakeYearRepo {
	r := &fakeYearRepo{years: make(map[uuid.UUID]*entity.AcademicYear)}
	for _, y := range years {
		if y.ID == uuid.Nil {
			y.ID = uuid.New()
		}
		r.years[y.ID] = y
	}
	return r
}

func (r *fakeYearRepo) Create(ctx context.Context, year *entity.AcademicYear) error {
	if year.ID == uuid.Nil {
		year.ID = uuid.New()
	}
	r.years[year.ID] = year
	return nil
}

func (r *fakeYearRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.AcademicYear, error) {
	return r.years[id], nil
}

func (r *fakeYearRepo) List(ctx context.Context) ([]entity.AcademicYear, error) {
	out := make([]entity.AcademicYear, 0, len(r.years))
	for _, y := range r.years {
		out = append(out, *y)
	}
	return out, nil
}

type fakeClassRepo struct {
	classes map[uuid.UUID]*entity.ClassRoom
}

func newFakeClassRepo(classes ...*entity.ClassRoom) *fakeClassRepo {
	r := &fakeClassRepo{classes: make(map[uuid.UUID]*entity.ClassRoom)}
	for _, c := range classes {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.classes[c.ID] = c
	}
	return r
}

func (r *fakeClassRepo) Create(ctx context.Context, class *entity.ClassRoom) error {
	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}
	r.classes[class.ID] = class
	return nil
}

func (r *fakeClassRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ClassRoom, error) {
	return r.classes[id], nil
}

func (r *fakeClassRepo) List(ctx context.Context) ([]entity.ClassRoom, error) {
	out := make([]entity.ClassRoom, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, *c)
	}
	return out, nil
}

type fakeSubjectRepo struct {
	subjects map[uuid.UUID]*entity.Subject
}

func newFakeSubjectRepo(subjects ...*entity.Subject) *fakeSubjectRepo {
	r := &fakeSubjectRepo{subjects: make(map[uuid.UUID]*entity.Subject)}
	for _, s := range subjects {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.subjects[s.ID] = s
	}
	return r
}

func (r *fakeSubjectRepo) Create(ctx context.Context, subject *entity.Subject) error {
	if subject.ID == uuid.Nil {
		subject.ID = uuid.New()
	}
	r.subjects[subject.ID] = subject
	return nil
}

func (r *fakeSubjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Subject, error) {
	return r.subjects[id], nil
}

func (r *fakeSubjectRepo) List(ctx context.Context) ([]entity.Subject, error) {
	out := make([]entity.Subject, 0, len(r.subjects))
	for _, s := range r.subjects {
		out = append(out, *s)
	}
	return out, nil
}

type fakeFeeRepo struct {
	structures map[uuid.UUID]*entity.FeeStructure
}

func newFakeFeeRepo(structures ...*entity.FeeStructure) *fakeFeeRepo {
	r := &fakeFeeRepo{structures: make(map[uuid.UUID]*entity.FeeStructure)}
	for _, s := range structures {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.structures[s.ID] = s
	}
	return r
}

func (r *fakeFeeRepo) Create(ctx context.Context, structure *entity.FeeStructure) error {
	if structure.ID == uuid.Nil {
		structure.ID = uuid.New()
	}
	r.structures[structure.ID] = structure
	return nil
}

func (r *fakeFeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	return r.structures[id], nil
}

func (r *fakeFeeRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	return r.structures[id], nil
}

func (r *fakeFeeRepo) List(ctx context.Context, academicYearID *uuid.UUID) ([]entity.FeeStructure, error) {
	out := make([]entity.FeeStructure, 0, len(r.structures))
	for _, s := range r.structures {
		if academicYearID != nil && s.AcademicYearID != *academicYearID {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]entity.Invoice)}
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	r.invoices[invoice.ID] = *invoice
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *fakeInvoiceRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeInvoiceRepo) GetWithPayments(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	r.invoices[invoice.ID] = *invoice
	return nil
}

func (r *fakeInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	out := make([]entity.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		if params.StudentID != nil && inv.StudentID != *params.StudentID {
			continue
		}
		if params.Status != nil && inv.Status != *params.Status {
			continue
		}
		out = append(out, inv)
	}
	return out, int64(len(out)), nil
}

func (r *fakeInvoiceRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.Invoice, error) {
	var out []entity.Invoice
	for _, inv := range r.invoices {
		if inv.StudentID == studentID {
			out = append(out, inv)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	payments []entity.Payment
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	for i := range r.payments {
		if r.payments[i].ID == id {
			p := r.payments[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Payment, int64, error) {
	out := make([]entity.Payment, len(r.payments))
	copy(out, r.payments)
	return out, int64(len(out)), nil
}

type fakeSequenceRepo struct {
	counters map[string]int64
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{counters: make(map[string]int64)}
}

func (r *fakeSequenceRepo) Next(ctx context.Context, schoolID uuid.UUID, name string) (int64, error) {
	key := schoolID.String() + "/" + name
	r.counters[key]++
	return r.counters[key], nil
}

type fakeExamRepo struct {
	exams map[uuid.UUID]*entity.Exam
}

func newFakeExamRepo(exams ...*entity.Exam) *fakeExamRepo {
	r := &fakeExamRepo{exams: make(map[uuid.UUID]*entity.Exam)}
	for _, e := range exams {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		r.exams[e.ID] = e
	}
	return r
}

func (r *fakeExamRepo) Create(ctx context.Context, exam *entity.Exam) error {
	if exam.ID == uuid.Nil {
		exam.ID = uuid.New()
	}
	r.exams[exam.ID] = exam
	return nil
}

func (r *fakeExamRepo) CreateSchedule(ctx context.Context, entries []entity.ExamSchedule) error {
	for _, entry := range entries {
		if exam, ok := r.exams[entry.ExamID]; ok {
			if entry.ID == uuid.Nil {
				entry.ID = uuid.New()
			}
			exam.Schedule = append(exam.Schedule, entry)
		}
	}
	return nil
}

func (r *fakeExamRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Exam, error) {
	return r.exams[id], nil
}

func (r *fakeExamRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Exam, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeExamRepo) GetWithSchedule(ctx context.Context, id uuid.UUID) (*entity.Exam, error) {
	return r.exams[id], nil
}

func (r *fakeExamRepo) List(ctx context.Context, academicYearID *uuid.UUID) ([]entity.Exam, error) {
	out := make([]entity.Exam, 0, len(r.exams))
	for _, e := range r.exams {
		if academicYearID != nil && e.AcademicYearID != *academicYearID {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeExamRepo) Update(ctx context.Context, exam *entity.Exam) error {
	r.exams[exam.ID] = exam
	return nil
}

type markKey struct {
	exam    uuid.UUID
	student uuid.UUID
	subject uuid.UUID
}

type fakeMarkRepo struct {
	marks map[markKey]entity.Mark
}

func newFakeMarkRepo() *fakeMarkRepo {
	return &fakeMarkRepo{marks: make(map[markKey]entity.Mark)}
}

func (r *fakeMarkRepo) Upsert(ctx context.Context, mark *entity.Mark) error {
	key := markKey{exam: mark.ExamID, student: mark.StudentID, subject: mark.SubjectID}
	if existing, ok := r.marks[key]; ok {
		mark.ID = existing.ID
	} else if mark.ID == uuid.Nil {
		mark.ID = uuid.New()
	}
	r.marks[key] = *mark
	return nil
}

func (r *fakeMarkRepo) ListByExam(ctx context.Context, examID uuid.UUID) ([]entity.Mark, error) {
	var out []entity.Mark
	for _, m := range r.marks {
		if m.ExamID == examID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMarkRepo) ListByExamAndStudent(ctx context.Context, examID, studentID uuid.UUID) ([]entity.Mark, error) {
	var out []entity.Mark
	for _, m := range r.marks {
		if m.ExamID == examID && m.StudentID == studentID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeReportCardRepo struct {
	cards map[uuid.UUID][]entity.ReportCard
}

func newFakeReportCardRepo() *fakeReportCardRepo {
	return &fakeReportCardRepo{cards: make(map[uuid.UUID][]entity.ReportCard)}
}

func (r *fakeReportCardRepo) ReplaceForExam(ctx context.Context, examID uuid.UUID, cards []entity.ReportCard) error {
	stored := make([]entity.ReportCard, len(cards))
	copy(stored, cards)
	for i := range stored {
		if stored[i].ID == uuid.Nil {
			stored[i].ID = uuid.New()
		}
	}
	r.cards[examID] = stored
	return nil
}

func (r *fakeReportCardRepo) GetByExamAndStudent(ctx context.Context, examID, studentID uuid.UUID) (*entity.ReportCard, error) {
	for _, c := range r.cards[examID] {
		if c.StudentID == studentID {
			card := c
			return &card, nil
		}
	}
	return nil, nil
}

func (r *fakeReportCardRepo) ListByExam(ctx context.Context, examID uuid.UUID) ([]entity.ReportCard, error) {
	out := make([]entity.ReportCard, len(r.cards[examID]))
	copy(out, r.cards[examID])
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

func (r *fakeReportCardRepo) PublishByExam(ctx context.Context, examID uuid.UUID) error {
	cards := r.cards[examID]
	for i := range cards {
		cards[i].IsPublished = true
	}
	return nil
}

type fakeAttendanceRepo struct {
	sessions map[uuid.UUID]*entity.AttendanceSession
	records  []entity.StudentAttendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{sessions: make(map[uuid.UUID]*entity.AttendanceSession)}
}

func (r *fakeAttendanceRepo) CreateSession(ctx context.Context, session *entity.AttendanceSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeAttendanceRepo) CreateRecords(ctx context.Context, records []entity.StudentAttendance) error {
	for _, rec := range records {
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		r.records = append(r.records, rec)
	}
	return nil
}

func (r *fakeAttendanceRepo) GetSession(ctx context.Context, id uuid.UUID) (*entity.AttendanceSession, error) {
	return r.sessions[id], nil
}

func (r *fakeAttendanceRepo) GetSessionWithRecords(ctx context.Context, id uuid.UUID) (*entity.AttendanceSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	withRecords := *session
	withRecords.Records = nil
	for _, rec := range r.records {
		if rec.SessionID == id {
			withRecords.Records = append(withRecords.Records, rec)
		}
	}
	return &withRecords, nil
}

func (r *fakeAttendanceRepo) FindSession(ctx context.Context, classID uuid.UUID, section *string, date time.Time, period *string) (*entity.AttendanceSession, error) {
	for _, s := range r.sessions {
		if s.ClassID == classID && sameDay(s.Date, date) && strPtrEqual(s.Section, section) && strPtrEqual(s.Period, period) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) ListSessions(ctx context.Context, classID uuid.UUID, section *string, from, to time.Time) ([]entity.AttendanceSession, error) {
	var out []entity.AttendanceSession
	for _, s := range r.sessions {
		if s.ClassID != classID {
			continue
		}
		if section != nil && !strPtrEqual(s.Section, section) {
			continue
		}
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListRecordsBySessions(ctx context.Context, sessionIDs []uuid.UUID) ([]entity.StudentAttendance, error) {
	wanted := make(map[uuid.UUID]bool, len(sessionIDs))
	for _, id := range sessionIDs {
		wanted[id] = true
	}
	var out []entity.StudentAttendance
	for _, rec := range r.records {
		if wanted[rec.SessionID] {
			out = append(out, rec)
		}
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}
