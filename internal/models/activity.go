package models

// Activity is the typed input of one category report.
type Activity interface {
	Kind() CategoryKind
}

// GuarantorLevel is the education level of a programme the person guarantees.
type GuarantorLevel string

const (
	GuarantorNone       GuarantorLevel = ""
	GuarantorLevelOne   GuarantorLevel = "level_one"
	GuarantorLevelTwo   GuarantorLevel = "level_two"
	GuarantorLevelThree GuarantorLevel = "level_three"
)

// HonoraryTitle is an academic or state title awarded during the period.
type HonoraryTitle string

const (
	TitleNone                     HonoraryTitle = ""
	TitleHonoredWorkerOfEducation HonoraryTitle = "honored_worker_of_education"
	TitleExcellentEducation       HonoraryTitle = "excellent_education"
	TitleHonoredProfessor         HonoraryTitle = "honored_professor"
	TitleHonoredLecturer          HonoraryTitle = "honored_lecturer"
	TitleProfessor                HonoraryTitle = "professor"
	TitleDocent                   HonoraryTitle = "docent"
)

// CommitteeRole is a seat on a commission or council.
type CommitteeRole string

const (
	RoleNone      CommitteeRole = ""
	RoleHead      CommitteeRole = "head"
	RoleSecretary CommitteeRole = "secretary"
	RoleMember    CommitteeRole = "member"
)

// List fields hold ";" separated numbers, one entry per item with the entry being
// the item's volume or its number of co-authors. Decimal commas are accepted.

// EducationalInput is the educational and methodical work report.
type EducationalInput struct {
	// 1 teaching load, hours
	AuditoryHours        float64 `json:"auditory_hours" yaml:"auditory_hours" validate:"gte=0,lte=600"`
	ForeignLanguageHours float64 `json:"foreign_language_hours" yaml:"foreign_language_hours" validate:"gte=0,lte=600"`
	TotalHours           float64 `json:"total_hours" yaml:"total_hours" validate:"gte=0,lte=600,gtefield=AuditoryHours"`

	// 2 educational programmes
	ProgramsDeveloped string `json:"programs_developed" yaml:"programs_developed" validate:"float_list"`
	ProgramsUpdated   string `json:"programs_updated" yaml:"programs_updated" validate:"float_list"`

	// 3 curricula, number of co-authors per curriculum
	CurriculaNew              string `json:"curricula_new" yaml:"curricula_new" validate:"int_list"`
	CurriculaWorking          string `json:"curricula_working" yaml:"curricula_working" validate:"int_list"`
	SecondaryCurriculaNew     string `json:"secondary_curricula_new" yaml:"secondary_curricula_new" validate:"int_list"`
	SecondaryCurriculaWorking string `json:"secondary_curricula_working" yaml:"secondary_curricula_working" validate:"int_list"`

	// 4
	GuarantorLevel GuarantorLevel `json:"guarantor_level" yaml:"guarantor_level" validate:"omitempty,oneof=level_one level_two level_three"`

	// 5 licensing and accreditation cases
	LicensingCases     string `json:"licensing_cases" yaml:"licensing_cases" validate:"float_list"`
	AccreditationCases string `json:"accreditation_cases" yaml:"accreditation_cases" validate:"float_list"`

	// 6 publications as V(K) pairs: volume in sheets and author share
	LectureCourses    string `json:"lecture_courses" yaml:"lecture_courses" validate:"weighted_pairs"`
	Guidelines        string `json:"guidelines" yaml:"guidelines" validate:"weighted_pairs"`
	TextbooksDomestic string `json:"textbooks_domestic" yaml:"textbooks_domestic" validate:"weighted_pairs"`
	ManualsDomestic   string `json:"manuals_domestic" yaml:"manuals_domestic" validate:"weighted_pairs"`
	TextbooksAbroad   string `json:"textbooks_abroad" yaml:"textbooks_abroad" validate:"weighted_pairs"`
	ManualsAbroad     string `json:"manuals_abroad" yaml:"manuals_abroad" validate:"weighted_pairs"`

	// 7
	Editing     string `json:"editing" yaml:"editing" validate:"float_list"`
	Translation string `json:"translation" yaml:"translation" validate:"float_list"`

	// 8 course syllabi
	SyllabusDeveloped string `json:"syllabus_developed" yaml:"syllabus_developed" validate:"float_list"`
	SyllabusUpdated   string `json:"syllabus_updated" yaml:"syllabus_updated" validate:"float_list"`

	// 9 lecture presentations
	PresentationsDeveloped int `json:"presentations_developed" yaml:"presentations_developed" validate:"gte=0"`
	PresentationsUpdated   int `json:"presentations_updated" yaml:"presentations_updated" validate:"gte=0"`

	// 10
	LabWorksDeveloped string `json:"lab_works_developed" yaml:"lab_works_developed" validate:"float_list"`
	LabWorksUpdated   string `json:"lab_works_updated" yaml:"lab_works_updated" validate:"float_list"`

	// 11
	LabEquipmentDeveloped int `json:"lab_equipment_developed" yaml:"lab_equipment_developed" validate:"gte=0"`
	LabEquipmentUpdated   int `json:"lab_equipment_updated" yaml:"lab_equipment_updated" validate:"gte=0"`

	// 12
	SoftwareDeveloped string `json:"software_developed" yaml:"software_developed" validate:"float_list"`
	SoftwareUpdated   string `json:"software_updated" yaml:"software_updated" validate:"float_list"`

	// 13
	TeachingMethods string `json:"teaching_methods" yaml:"teaching_methods" validate:"float_list"`

	// 14 e-learning resources
	ELearningDeveloped string `json:"elearning_developed" yaml:"elearning_developed" validate:"float_list"`
	ELearningUpdated   string `json:"elearning_updated" yaml:"elearning_updated" validate:"float_list"`

	// 15 entrance exam programmes per education level
	EntranceBachelorDeveloped string `json:"entrance_bachelor_developed" yaml:"entrance_bachelor_developed" validate:"float_list"`
	EntranceBachelorUpdated   string `json:"entrance_bachelor_updated" yaml:"entrance_bachelor_updated" validate:"float_list"`
	EntranceMasterDeveloped   string `json:"entrance_master_developed" yaml:"entrance_master_developed" validate:"float_list"`
	EntranceMasterUpdated     string `json:"entrance_master_updated" yaml:"entrance_master_updated" validate:"float_list"`
	EntrancePhDDeveloped      string `json:"entrance_phd_developed" yaml:"entrance_phd_developed" validate:"float_list"`
	EntrancePhDUpdated        string `json:"entrance_phd_updated" yaml:"entrance_phd_updated" validate:"float_list"`

	// 16
	ReviewedTextbooks       string `json:"reviewed_textbooks" yaml:"reviewed_textbooks" validate:"float_list"`
	ReviewedClosedMaterials string `json:"reviewed_closed_materials" yaml:"reviewed_closed_materials" validate:"float_list"`

	// 17 expertise
	ExpertiseRegulations   int `json:"expertise_regulations" yaml:"expertise_regulations" validate:"gte=0"`
	ExpertiseDiplomaWorks  int `json:"expertise_diploma_works" yaml:"expertise_diploma_works" validate:"gte=0"`
	ExpertiseJuniorAcademy int `json:"expertise_junior_academy" yaml:"expertise_junior_academy" validate:"gte=0"`

	// 18 international project
	ProjectLeader    bool `json:"project_leader" yaml:"project_leader"`
	ProjectExecutors int  `json:"project_executors" yaml:"project_executors" validate:"gte=0"`

	// 19 concert programmes, exhibitions, sport events
	EventsInternational int `json:"events_international" yaml:"events_international" validate:"gte=0"`
	EventsNational      int `json:"events_national" yaml:"events_national" validate:"gte=0"`
	EventsRegional      int `json:"events_regional" yaml:"events_regional" validate:"gte=0"`

	// 20 laureates of creative contests
	LaureatesInternational int `json:"laureates_international" yaml:"laureates_international" validate:"gte=0"`
	LaureatesNational      int `json:"laureates_national" yaml:"laureates_national" validate:"gte=0"`
	LaureatesRegional      int `json:"laureates_regional" yaml:"laureates_regional" validate:"gte=0"`

	// 21 competition prize winners
	PrizeWinnersWorld    int `json:"prize_winners_world" yaml:"prize_winners_world" validate:"gte=0"`
	PrizeWinnersEurope   int `json:"prize_winners_europe" yaml:"prize_winners_europe" validate:"gte=0"`
	PrizeWinnersNational int `json:"prize_winners_national" yaml:"prize_winners_national" validate:"gte=0"`

	// 22 competition participants
	ParticipantsWorld  int `json:"participants_world" yaml:"participants_world" validate:"gte=0"`
	ParticipantsEurope int `json:"participants_europe" yaml:"participants_europe" validate:"gte=0"`

	// 23
	HonoraryTitle HonoraryTitle `json:"honorary_title" yaml:"honorary_title" validate:"omitempty,oneof=honored_worker_of_education excellent_education honored_professor honored_lecturer professor docent"`
}

func (EducationalInput) Kind() CategoryKind { return KindEducational }

// ScientificInput is the scientific and innovative work report; the total is computed elsewhere.
type ScientificInput struct {
	TotalScore float64 `json:"total_score" yaml:"total_score" validate:"gte=0"`
}

func (ScientificInput) Kind() CategoryKind { return KindScientific }

// OrganizationalInput is the organizational and educational work report.
type OrganizationalInput struct {
	// 1 ministry scientific-methodical commissions
	MinistryCommissionRole CommitteeRole `json:"ministry_commission_role" yaml:"ministry_commission_role" validate:"omitempty,oneof=head secretary member"`

	// 2, 3
	AccreditationCommission bool `json:"accreditation_commission" yaml:"accreditation_commission"`
	LicensingCommission     bool `json:"licensing_commission" yaml:"licensing_commission"`

	// 4 university and faculty councils
	ResearchCouncilRole          CommitteeRole `json:"research_council_role" yaml:"research_council_role" validate:"omitempty,oneof=head secretary member"`
	MethodicalCouncilRole        CommitteeRole `json:"methodical_council_role" yaml:"methodical_council_role" validate:"omitempty,oneof=head secretary member"`
	FacultyMethodicalCouncilRole CommitteeRole `json:"faculty_methodical_council_role" yaml:"faculty_methodical_council_role" validate:"omitempty,oneof=head secretary member"`
	QualityCouncilRole           CommitteeRole `json:"quality_council_role" yaml:"quality_council_role" validate:"omitempty,oneof=head secretary member"`
	FacultyQualityBureauRole     CommitteeRole `json:"faculty_quality_bureau_role" yaml:"faculty_quality_bureau_role" validate:"omitempty,oneof=head secretary member"`
	FacultyIntegrityBureauRole   CommitteeRole `json:"faculty_integrity_bureau_role" yaml:"faculty_integrity_bureau_role" validate:"omitempty,oneof=head secretary member"`

	// 5 conferences organised, by organising committee role
	ConferenceChair     int `json:"conference_chair" yaml:"conference_chair" validate:"gte=0"`
	ConferenceSecretary int `json:"conference_secretary" yaml:"conference_secretary" validate:"gte=0"`
	ConferenceMember    int `json:"conference_member" yaml:"conference_member" validate:"gte=0"`

	// 6 deputy dean duties
	DeputyDeanEducational bool `json:"deputy_dean_educational" yaml:"deputy_dean_educational"`
	DeputyDeanOther       bool `json:"deputy_dean_other" yaml:"deputy_dean_other"`

	// 7 - 10
	ExamCommissionDays int `json:"exam_commission_days" yaml:"exam_commission_days" validate:"gte=0"`
	NormControlWorks   int `json:"norm_control_works" yaml:"norm_control_works" validate:"gte=0"`
	PlagiarismChecks   int `json:"plagiarism_checks" yaml:"plagiarism_checks" validate:"gte=0"`
	DiplomaSupplements int `json:"diploma_supplements" yaml:"diploma_supplements" validate:"gte=0"`

	// 11
	Curator       bool `json:"curator" yaml:"curator"`
	DormitoryWork bool `json:"dormitory_work" yaml:"dormitory_work"`

	// 12, 13
	UniversityCouncil  bool          `json:"university_council" yaml:"university_council"`
	FacultyCouncilRole CommitteeRole `json:"faculty_council_role" yaml:"faculty_council_role" validate:"omitempty,oneof=head secretary member"`

	// 14 one-off specialised academic councils
	SpecializedCouncilLead   bool `json:"specialized_council_lead" yaml:"specialized_council_lead"`
	SpecializedCouncilMember bool `json:"specialized_council_member" yaml:"specialized_council_member"`

	// 15, 16
	OrganisationalTasks  int `json:"organisational_tasks" yaml:"organisational_tasks" validate:"gte=0"`
	CareerGuidanceEvents int `json:"career_guidance_events" yaml:"career_guidance_events" validate:"gte=0"`

	// 17 admission committee
	AdmissionSecretary       bool `json:"admission_secretary" yaml:"admission_secretary"`
	AdmissionDeputySecretary bool `json:"admission_deputy_secretary" yaml:"admission_deputy_secretary"`
	AdmissionExamChair       bool `json:"admission_exam_chair" yaml:"admission_exam_chair"`
	AdmissionSelection       int  `json:"admission_selection" yaml:"admission_selection" validate:"gte=0"`
	AdmissionInterviews      int  `json:"admission_interviews" yaml:"admission_interviews" validate:"gte=0"`
	AdmissionDataEntry       int  `json:"admission_data_entry" yaml:"admission_data_entry" validate:"gte=0"`
	AdmissionAssistance      int  `json:"admission_assistance" yaml:"admission_assistance" validate:"gte=0"`
	AdmissionAppeals         int  `json:"admission_appeals" yaml:"admission_appeals" validate:"gte=0"`

	// 18 - 22
	RegistryDataEntry bool `json:"registry_data_entry" yaml:"registry_data_entry"`
	Olympiads         int  `json:"olympiads" yaml:"olympiads" validate:"gte=0"`
	CulturalEvents    int  `json:"cultural_events" yaml:"cultural_events" validate:"gte=0"`
	TradeUnion        bool `json:"trade_union" yaml:"trade_union"`
	VolunteerProject  bool `json:"volunteer_project" yaml:"volunteer_project"`
}

func (OrganizationalInput) Kind() CategoryKind { return KindOrganizational }
