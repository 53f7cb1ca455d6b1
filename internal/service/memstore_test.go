package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/noah-isme/academic-rating/internal/models"
)

// memStore is an in-memory stand-in for the PostgreSQL repositories. Joined read
// fields are filled from the stored profiles the way the SQL joins do.
type memStore struct {
	mu sync.Mutex

	periods       []models.ReportPeriod
	profiles      map[int64]models.Profile
	generics      map[int64]*models.GenericReport
	categories    map[int64]*models.CategoryReport
	teachers      map[int64]*models.TeacherResult
	heads         map[int64]*models.HeadResult
	faculties     map[int64]*models.FacultyResult
	deans         map[int64]*models.DeanResult
	facultyTitles map[int64]string

	nextID int64
}

func newMemStore() *memStore {
	return &memStore{
		profiles:      map[int64]models.Profile{},
		generics:      map[int64]*models.GenericReport{},
		categories:    map[int64]*models.CategoryReport{},
		teachers:      map[int64]*models.TeacherResult{},
		heads:         map[int64]*models.HeadResult{},
		faculties:     map[int64]*models.FacultyResult{},
		deans:         map[int64]*models.DeanResult{},
		facultyTitles: map[int64]string{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func ptr64(v int64) *int64 { return &v }

func (m *memStore) addProfile(id int64, name string, department, faculty *int64, mode models.CumulativeMode) {
	m.profiles[id] = models.Profile{ID: id, FullName: name, DepartmentID: department, FacultyID: faculty, Cumulative: mode}
}

func (m *memStore) addGeneric(profileID, periodID int64, share, duration float64) *models.GenericReport {
	g := &models.GenericReport{ID: m.id(), ProfileID: profileID, PeriodID: periodID, AssignmentShare: share, AssignmentDuration: duration}
	m.generics[g.ID] = g
	return g
}

func (m *memStore) addCategory(genericID int64, kind models.CategoryKind, payload string, result, adjusted float64) *models.CategoryReport {
	c := &models.CategoryReport{ID: m.id(), GenericReportID: genericID, Kind: kind, Payload: []byte(payload), Result: result, AdjustedResult: adjusted}
	m.categories[c.ID] = c
	return c
}

func sortedKeys[V any](in map[int64]V) []int64 {
	keys := make([]int64, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// periods

type memPeriods struct{ *memStore }

func (r memPeriods) FindByID(ctx context.Context, id int64) (*models.ReportPeriod, error) {
	for _, p := range r.periods {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memPeriods) FindByTitle(ctx context.Context, title string) (*models.ReportPeriod, error) {
	for _, p := range r.periods {
		if p.Title == title {
			p := p
			return &p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memPeriods) ListActive(ctx context.Context) ([]models.ReportPeriod, error) {
	var out []models.ReportPeriod
	for _, p := range r.periods {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memPeriods) Create(ctx context.Context, period *models.ReportPeriod) error {
	period.ID = r.id()
	period.IsActive = false
	r.periods = append(r.periods, *period)
	return nil
}

func (r memPeriods) SetActive(ctx context.Context, id int64) error {
	for i := range r.periods {
		r.periods[i].IsActive = r.periods[i].ID == id
	}
	return nil
}

// profiles

type memProfiles struct{ *memStore }

func (r memProfiles) FindByID(ctx context.Context, id int64) (*models.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (r memProfiles) ListWithDepartment(ctx context.Context) ([]models.Profile, error) {
	var out []models.Profile
	for _, id := range sortedKeys(r.profiles) {
		if p := r.profiles[id]; p.DepartmentID != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memProfiles) ListCumulative(ctx context.Context) ([]models.Profile, error) {
	var out []models.Profile
	for _, id := range sortedKeys(r.profiles) {
		if p := r.profiles[id]; p.Cumulative != models.CumulativeNone {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memProfiles) FindHead(ctx context.Context, mode models.CumulativeMode, scopeID int64) (*models.Profile, error) {
	for _, id := range sortedKeys(r.profiles) {
		p := r.profiles[id]
		if p.Cumulative != mode {
			continue
		}
		scope := p.DepartmentID
		if mode == models.CumulativeByFaculty {
			scope = p.FacultyID
		}
		if scope != nil && *scope == scopeID {
			return &p, nil
		}
	}
	return nil, sql.ErrNoRows
}

// generic reports

type memGenerics struct{ *memStore }

func (r memGenerics) FindByID(ctx context.Context, id int64) (*models.GenericReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.generics[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *g
	return &cp, nil
}

func (r memGenerics) FindByProfilePeriod(ctx context.Context, profileID, periodID int64) (*models.GenericReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range sortedKeys(r.generics) {
		if g := r.generics[id]; g.ProfileID == profileID && g.PeriodID == periodID {
			cp := *g
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memGenerics) Upsert(ctx context.Context, report *models.GenericReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.generics {
		if g.ProfileID == report.ProfileID && g.PeriodID == report.PeriodID {
			g.AssignmentDuration = report.AssignmentDuration
			g.AssignmentShare = report.AssignmentShare
			g.StudentsRating = report.StudentsRating
			*report = *g
			return nil
		}
	}
	report.ID = r.id()
	cp := *report
	r.generics[report.ID] = &cp
	return nil
}

func (r memGenerics) UpdateResult(ctx context.Context, id int64, individual, result float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.generics[id]; ok {
		g.IndividualResult = individual
		g.Result = result
	}
	return nil
}

func (r memGenerics) Close(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.generics[id]; ok {
		g.IsClosed = true
	}
	return nil
}

func (r memGenerics) SumPeerResults(ctx context.Context, periodID int64, mode models.CumulativeMode, scopeID, excludeID int64) (float64, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	var count int
	for _, g := range r.generics {
		if g.PeriodID != periodID || g.ID == excludeID {
			continue
		}
		p := r.profiles[g.ProfileID]
		scope := p.DepartmentID
		if mode == models.CumulativeByFaculty {
			scope = p.FacultyID
		}
		if scope != nil && *scope == scopeID {
			sum += g.IndividualResult
			count++
		}
	}
	return sum, count, nil
}

// category reports

type memCategories struct{ *memStore }

func (r memCategories) ListByGeneric(ctx context.Context, genericID int64) ([]models.CategoryReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CategoryReport
	for _, id := range sortedKeys(r.categories) {
		if c := r.categories[id]; c.GenericReportID == genericID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r memCategories) ListByPeriodKind(ctx context.Context, periodID int64, kind models.CategoryKind) ([]models.CategoryReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CategoryReport
	for _, id := range sortedKeys(r.categories) {
		c := r.categories[id]
		g, ok := r.generics[c.GenericReportID]
		if ok && g.PeriodID == periodID && c.Kind == kind {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r memCategories) Upsert(ctx context.Context, report *models.CategoryReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(report.Payload) == 0 {
		report.Payload = []byte("{}")
	}
	for _, c := range r.categories {
		if c.GenericReportID == report.GenericReportID && c.Kind == report.Kind {
			report.ID = c.ID
			*c = *report
			return nil
		}
	}
	report.ID = r.id()
	cp := *report
	r.categories[report.ID] = &cp
	return nil
}

func (r memCategories) UpdateScores(ctx context.Context, id int64, result, adjusted float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.categories[id]; ok {
		c.Result, c.AdjustedResult = result, adjusted
	}
	return nil
}

// results

type memTeacherResults struct{ *memStore }

func (r memTeacherResults) Upsert(ctx context.Context, result *models.TeacherResult) error {
	for _, t := range r.teachers {
		if t.GenericReportID == result.GenericReportID {
			result.ID = t.ID
			t.EducationalPlace, t.ScientificPlace, t.OrganizationalPlace = result.EducationalPlace, result.ScientificPlace, result.OrganizationalPlace
			t.ScoresSum = result.ScoresSum
			return nil
		}
	}
	result.ID = r.id()
	cp := *result
	r.teachers[result.ID] = &cp
	return nil
}

func (r memTeacherResults) ListByPeriod(ctx context.Context, periodID int64) ([]models.TeacherResult, error) {
	var out []models.TeacherResult
	for _, id := range sortedKeys(r.teachers) {
		t := *r.teachers[id]
		g, ok := r.generics[t.GenericReportID]
		if !ok || g.PeriodID != periodID {
			continue
		}
		p := r.profiles[g.ProfileID]
		t.ProfileID, t.FullName, t.DepartmentID, t.FacultyID, t.Cumulative = p.ID, p.FullName, p.DepartmentID, p.FacultyID, p.Cumulative
		out = append(out, t)
	}
	return out, nil
}

func (r memTeacherResults) SetPlaces(ctx context.Context, assignments []models.PlaceAssignment) error {
	for _, a := range assignments {
		place := a.Place
		r.teachers[a.ID].Place = &place
	}
	return nil
}

type memHeadResults struct{ *memStore }

func (r memHeadResults) Upsert(ctx context.Context, result *models.HeadResult) error {
	for _, h := range r.heads {
		if h.TeacherResultID == result.TeacherResultID {
			result.ID = h.ID
			h.PeerSum, h.PeerCount, h.ScoresSum = result.PeerSum, result.PeerCount, result.ScoresSum
			return nil
		}
	}
	result.ID = r.id()
	cp := *result
	r.heads[result.ID] = &cp
	return nil
}

func (r memHeadResults) ListByPeriod(ctx context.Context, periodID int64) ([]models.HeadResult, error) {
	var out []models.HeadResult
	for _, id := range sortedKeys(r.heads) {
		h := *r.heads[id]
		t := r.teachers[h.TeacherResultID]
		g := r.generics[t.GenericReportID]
		if g.PeriodID != periodID {
			continue
		}
		p := r.profiles[g.ProfileID]
		h.FullName, h.DepartmentID = p.FullName, p.DepartmentID
		out = append(out, h)
	}
	return out, nil
}

func (r memHeadResults) ReplacePlaces(ctx context.Context, periodID int64, keep []int64, assignments []models.PlaceAssignment) (int64, error) {
	var removed int64
	for id, h := range r.heads {
		if r.inPeriod(h.TeacherResultID, periodID) && !containsID(keep, h.TeacherResultID) {
			delete(r.heads, id)
			removed++
		}
	}
	for _, a := range assignments {
		place := a.Place
		r.heads[a.ID].Place = &place
	}
	return removed, nil
}

type memFacultyResults struct{ *memStore }

func (r memFacultyResults) Upsert(ctx context.Context, result *models.FacultyResult) error {
	for _, f := range r.faculties {
		if f.PeriodID == result.PeriodID && f.FacultyID == result.FacultyID {
			result.ID = f.ID
			f.PlacesSum, f.PlacesCount, f.PlacesAverage = result.PlacesSum, result.PlacesCount, result.PlacesAverage
			return nil
		}
	}
	result.ID = r.id()
	cp := *result
	r.faculties[result.ID] = &cp
	return nil
}

func (r memFacultyResults) ListByPeriod(ctx context.Context, periodID int64) ([]models.FacultyResult, error) {
	var out []models.FacultyResult
	for _, id := range sortedKeys(r.faculties) {
		f := *r.faculties[id]
		if f.PeriodID != periodID {
			continue
		}
		f.FacultyTitle = r.facultyTitles[f.FacultyID]
		out = append(out, f)
	}
	return out, nil
}

func (r memFacultyResults) SetPlaces(ctx context.Context, assignments []models.PlaceAssignment) error {
	for _, a := range assignments {
		place := a.Place
		r.faculties[a.ID].Place = &place
	}
	return nil
}

type memDeanResults struct{ *memStore }

func (r memDeanResults) Upsert(ctx context.Context, result *models.DeanResult) error {
	for _, d := range r.deans {
		if d.TeacherResultID == result.TeacherResultID {
			result.ID = d.ID
			d.SumPlace = result.SumPlace
			return nil
		}
	}
	result.ID = r.id()
	cp := *result
	r.deans[result.ID] = &cp
	return nil
}

func (r memDeanResults) ListByPeriod(ctx context.Context, periodID int64) ([]models.DeanResult, error) {
	var out []models.DeanResult
	for _, id := range sortedKeys(r.deans) {
		d := *r.deans[id]
		t := r.teachers[d.TeacherResultID]
		g := r.generics[t.GenericReportID]
		if g.PeriodID != periodID {
			continue
		}
		p := r.profiles[g.ProfileID]
		d.FullName, d.FacultyID = p.FullName, p.FacultyID
		out = append(out, d)
	}
	return out, nil
}

func (r memDeanResults) ReplacePlaces(ctx context.Context, periodID int64, keep []int64, assignments []models.PlaceAssignment) (int64, error) {
	var removed int64
	for id, d := range r.deans {
		if r.inPeriod(d.TeacherResultID, periodID) && !containsID(keep, d.TeacherResultID) {
			delete(r.deans, id)
			removed++
		}
	}
	for _, a := range assignments {
		place := a.Place
		r.deans[a.ID].Place = &place
	}
	return removed, nil
}

// inPeriod reports whether a teacher result belongs to periodID.
func (m *memStore) inPeriod(teacherResultID, periodID int64) bool {
	t, ok := m.teachers[teacherResultID]
	if !ok {
		return false
	}
	g, ok := m.generics[t.GenericReportID]
	return ok && g.PeriodID == periodID
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
