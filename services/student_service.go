package services

import (
	"strings"
	"time"

	"github.com/victorrChoi/dalgubul/models"
	"github.com/victorrChoi/dalgubul/store"
)

type StudentService struct {
	store *store.Store
}

func NewStudentService(st *store.Store) *StudentService {
	return &StudentService{store: st}
}

// StudentInput carries the editable fields. Dates arrive as YYYY-MM-DD
// strings from the transport and are parsed here; OutDate may be blank.
type StudentInput struct {
	Name         string `json:"name"`
	StudentNo    string `json:"student_no"`
	Gender       string `json:"gender"`
	Room         string `json:"room"`
	Phone        string `json:"phone"`
	ParentPhone  string `json:"parent_phone"`
	Address      string `json:"address"`
	MiddleSchool string `json:"middle_school"`
	InDate       string `json:"in_date"`
	OutDate      string `json:"out_date"`
	Password     string `json:"password"`
	Note         string `json:"note"`
}

func (in *StudentInput) normalize() {
	in.Name = strings.Join(strings.Fields(in.Name), " ")
	in.StudentNo = strings.TrimSpace(in.StudentNo)
	in.Gender = strings.TrimSpace(in.Gender)
	in.Room = strings.TrimSpace(in.Room)
	in.Phone = strings.TrimSpace(in.Phone)
	in.ParentPhone = strings.TrimSpace(in.ParentPhone)
	in.MiddleSchool = strings.TrimSpace(in.MiddleSchool)
	in.InDate = strings.TrimSpace(in.InDate)
	in.OutDate = strings.TrimSpace(in.OutDate)
}

func (in *StudentInput) dates(fe fieldErrors) (time.Time, *time.Time) {
	inDate := time.Now().Truncate(24 * time.Hour)
	if in.InDate != "" {
		t, err := time.Parse(store.DateLayout, in.InDate)
		if err != nil {
			fe["in_date"] = "입사일은 YYYY-MM-DD 형식이어야 합니다"
		} else {
			inDate = t
		}
	}
	var outDate *time.Time
	if in.OutDate != "" {
		t, err := time.Parse(store.DateLayout, in.OutDate)
		if err != nil {
			fe["out_date"] = "퇴사일은 YYYY-MM-DD 형식이어야 합니다"
		} else {
			outDate = &t
		}
	}
	return inDate, outDate
}

// Create registers a student. Name, StudentNo and Password are required;
// a StudentNo already present (string comparison) fails with ErrDuplicateKey
// and leaves the table untouched.
func (s *StudentService) Create(in StudentInput) (models.Student, error) {
	in.normalize()

	fe := fieldErrors{}
	if in.Name == "" {
		fe["name"] = "이름은 필수입니다"
	}
	if in.StudentNo == "" {
		fe["student_no"] = "학번은 필수입니다"
	}
	if in.Password == "" {
		fe["password"] = "비밀번호는 필수입니다"
	}
	inDate, outDate := in.dates(fe)
	if err := fe.err(); err != nil {
		return models.Student{}, err
	}

	snap, err := s.store.LoadAll()
	if err != nil {
		return models.Student{}, err
	}
	for _, st := range snap.Students {
		if st.StudentNo == in.StudentNo {
			return models.Student{}, ErrDuplicateKey
		}
	}

	st := models.Student{
		ID:           snap.NextStudentID(),
		Name:         in.Name,
		StudentNo:    in.StudentNo,
		Gender:       in.Gender,
		Room:         in.Room,
		Phone:        in.Phone,
		ParentPhone:  in.ParentPhone,
		Address:      in.Address,
		MiddleSchool: in.MiddleSchool,
		InDate:       inDate,
		OutDate:      outDate,
		Password:     in.Password,
		Note:         in.Note,
	}
	snap.Students = append(snap.Students, st)
	if err := s.store.SaveAll(snap); err != nil {
		return models.Student{}, err
	}
	return st, nil
}

// Update overwrites the editable fields of the student currently holding
// studentNo. A blank Password keeps the existing one. StudentNo itself may
// change; dependent rows key on ID, so the rename does not break them.
func (s *StudentService) Update(studentNo string, in StudentInput) (models.Student, error) {
	in.normalize()

	fe := fieldErrors{}
	if in.Name == "" {
		fe["name"] = "이름은 필수입니다"
	}
	if in.StudentNo == "" {
		fe["student_no"] = "학번은 필수입니다"
	}
	inDate, outDate := in.dates(fe)
	if err := fe.err(); err != nil {
		return models.Student{}, err
	}

	snap, err := s.store.LoadAll()
	if err != nil {
		return models.Student{}, err
	}
	st := snap.FindStudentByNo(studentNo)
	if st == nil {
		return models.Student{}, ErrNotFound
	}
	if in.StudentNo != st.StudentNo {
		for _, other := range snap.Students {
			if other.ID != st.ID && other.StudentNo == in.StudentNo {
				return models.Student{}, ErrDuplicateKey
			}
		}
	}

	st.Name = in.Name
	st.StudentNo = in.StudentNo
	st.Gender = in.Gender
	st.Room = in.Room
	st.Phone = in.Phone
	st.ParentPhone = in.ParentPhone
	st.Address = in.Address
	st.MiddleSchool = in.MiddleSchool
	st.InDate = inDate
	st.OutDate = outDate
	st.Note = in.Note
	if in.Password != "" {
		st.Password = in.Password
	}

	updated := *st
	if err := s.store.SaveAll(snap); err != nil {
		return models.Student{}, err
	}
	return updated, nil
}

// Delete removes the student row by ID. With cascade set, dependent outing,
// score and payment rows go too; without it they stay behind as orphans
// (their report joins then show an empty name).
func (s *StudentService) Delete(id int, cascade bool) error {
	snap, err := s.store.LoadAll()
	if err != nil {
		return err
	}

	kept := snap.Students[:0]
	found := false
	for _, st := range snap.Students {
		if st.ID == id {
			found = true
			continue
		}
		kept = append(kept, st)
	}
	if !found {
		return ErrNotFound
	}
	snap.Students = kept

	if cascade {
		outings := snap.Outings[:0]
		for _, o := range snap.Outings {
			if o.StudentID != id {
				outings = append(outings, o)
			}
		}
		snap.Outings = outings

		scores := snap.Scores[:0]
		for _, sc := range snap.Scores {
			if sc.StudentID != id {
				scores = append(scores, sc)
			}
		}
		snap.Scores = scores

		payments := snap.Payments[:0]
		for _, p := range snap.Payments {
			if p.StudentID != id {
				payments = append(payments, p)
			}
		}
		snap.Payments = payments
	}

	return s.store.SaveAll(snap)
}

// List returns all students.
func (s *StudentService) List() ([]models.Student, error) {
	snap, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}
	return snap.Students, nil
}

// Get returns one student by ID.
func (s *StudentService) Get(id int) (models.Student, error) {
	snap, err := s.store.LoadAll()
	if err != nil {
		return models.Student{}, err
	}
	st := snap.FindStudentByID(id)
	if st == nil {
		return models.Student{}, ErrNotFound
	}
	return *st, nil
}

// Authenticate checks a student login: exactly one row must match studentNo
// and its stored password must equal the supplied one (plain string
// equality, per the deployment's accepted security model).
func (s *StudentService) Authenticate(studentNo, password string) (models.Student, error) {
	snap, err := s.store.LoadAll()
	if err != nil {
		return models.Student{}, err
	}
	st := snap.FindStudentByNo(studentNo)
	if st == nil || st.Password != password {
		return models.Student{}, ErrUnauthorized
	}
	return *st, nil
}
