package scoring

import "github.com/noah-isme/academic-rating/internal/models"

var guarantorRates = map[models.GuarantorLevel]float64{
	models.GuarantorLevelOne:   60,
	models.GuarantorLevelTwo:   40,
	models.GuarantorLevelThree: 20,
}

var titleRates = map[models.HonoraryTitle]float64{
	models.TitleHonoredWorkerOfEducation: 300,
	models.TitleExcellentEducation:       150,
	models.TitleHonoredProfessor:         100,
	models.TitleHonoredLecturer:          70,
	models.TitleProfessor:                120,
	models.TitleDocent:                   60,
}

// ScoreEducational returns the raw educational and methodical work score.
func ScoreEducational(in *models.EducationalInput, c Context) float64 {
	if in == nil {
		return 0
	}
	share := c.AssignmentShare

	sum := LoadRatio(in.AuditoryHours, in.TotalHours, in.ForeignLanguageHours, c.AnnualWorkload)
	sum += Multiply(1.5, in.ProgramsDeveloped) + Multiply(0.45, in.ProgramsUpdated)
	sum += Divide(50, in.CurriculaNew) + Divide(10, in.CurriculaWorking) +
		Divide(10, in.SecondaryCurriculaNew) + Divide(2, in.SecondaryCurriculaWorking)
	sum += Lookup(guarantorRates, in.GuarantorLevel)
	sum += Multiply(2, in.LicensingCases) + Multiply(3, in.AccreditationCases)
	sum += MultiplyComplex(0.14, in.LectureCourses) +
		MultiplyComplex(0.12, in.Guidelines) +
		MultiplyComplex(0.20, in.TextbooksDomestic) +
		MultiplyComplex(0.16, in.ManualsDomestic) +
		MultiplyComplex(0.24, in.TextbooksAbroad) +
		MultiplyComplex(0.18, in.ManualsAbroad)
	sum += Multiply(5, in.Editing) + Multiply(10, in.Translation)
	sum += Multiply(0.2, in.SyllabusDeveloped) + Multiply(0.05, in.SyllabusUpdated)

	// items 9 to 14 are credited per full-time equivalent
	sum += PerShare(5*float64(in.PresentationsDeveloped)+float64(in.PresentationsUpdated), share)
	sum += PerShare(Multiply(0.5, in.LabWorksDeveloped)+Multiply(0.1, in.LabWorksUpdated), share)
	sum += PerShare(10*float64(in.LabEquipmentDeveloped)+2*float64(in.LabEquipmentUpdated), share)
	sum += PerShare(Multiply(0.5, in.SoftwareDeveloped)+Multiply(0.1, in.SoftwareUpdated), share)
	sum += PerShare(Multiply(0.5, in.TeachingMethods), share)
	sum += PerShare(Multiply(0.5, in.ELearningDeveloped)+Multiply(0.1, in.ELearningUpdated), share)

	sum += Multiply(0.5, in.EntranceBachelorDeveloped) + Multiply(0.1, in.EntranceBachelorUpdated) +
		Multiply(0.3, in.EntranceMasterDeveloped) + Multiply(0.06, in.EntranceMasterUpdated) +
		Multiply(0.6, in.EntrancePhDDeveloped) + Multiply(0.12, in.EntrancePhDUpdated)
	sum += Multiply(4, in.ReviewedTextbooks) + Multiply(10, in.ReviewedClosedMaterials)
	sum += 50*float64(in.ExpertiseRegulations) + 15*float64(in.ExpertiseDiplomaWorks) + 10*float64(in.ExpertiseJuniorAcademy)
	sum += internationalProject(in.ProjectLeader, in.ProjectExecutors)
	sum += 100*float64(in.EventsInternational) + 60*float64(in.EventsNational) + 30*float64(in.EventsRegional)
	sum += 250*float64(in.LaureatesInternational) + 150*float64(in.LaureatesNational) + 75*float64(in.LaureatesRegional)
	sum += 500*float64(in.PrizeWinnersWorld) + 300*float64(in.PrizeWinnersEurope) + 150*float64(in.PrizeWinnersNational)
	sum += 200*float64(in.ParticipantsWorld) + 100*float64(in.ParticipantsEurope)
	sum += Lookup(titleRates, in.HonoraryTitle)
	sum += 2 * c.StudentsRating

	return Round2(sum)
}

// internationalProject credits the leader bonus and the executors' split of the project pool independently.
func internationalProject(leader bool, executors int) float64 {
	var r float64
	if leader {
		r += 60
	}
	if executors > 0 {
		r += 200 / float64(executors)
	}
	return r
}
