package scoring

import "github.com/noah-isme/academic-rating/internal/models"

var (
	ministryRoleRates = map[models.CommitteeRole]float64{
		models.RoleHead:      100,
		models.RoleSecretary: 100,
		models.RoleMember:    50,
	}
	universityCouncilRates = map[models.CommitteeRole]float64{
		models.RoleHead:      50,
		models.RoleSecretary: 50,
		models.RoleMember:    25,
	}
	facultyBodyRates = map[models.CommitteeRole]float64{
		models.RoleHead:      30,
		models.RoleSecretary: 30,
		models.RoleMember:    15,
	}
	facultyCouncilRates = map[models.CommitteeRole]float64{
		models.RoleHead:      35,
		models.RoleSecretary: 50,
		models.RoleMember:    25,
	}
)

// ScoreOrganizational returns the raw organizational and educational work score.
func ScoreOrganizational(in *models.OrganizationalInput, _ Context) float64 {
	if in == nil {
		return 0
	}

	sum := Lookup(ministryRoleRates, in.MinistryCommissionRole)
	sum += Flag(in.AccreditationCommission, 100) + Flag(in.LicensingCommission, 100)
	sum += Lookup(universityCouncilRates, in.ResearchCouncilRole) +
		Lookup(universityCouncilRates, in.MethodicalCouncilRole) +
		Lookup(facultyBodyRates, in.FacultyMethodicalCouncilRole) +
		Lookup(universityCouncilRates, in.QualityCouncilRole) +
		Lookup(facultyBodyRates, in.FacultyQualityBureauRole) +
		Lookup(facultyBodyRates, in.FacultyIntegrityBureauRole)
	sum += 50*float64(in.ConferenceChair) + 50*float64(in.ConferenceSecretary) + 20*float64(in.ConferenceMember)
	sum += Flag(in.DeputyDeanEducational, 250) + Flag(in.DeputyDeanOther, 150)
	sum += 10 * float64(in.ExamCommissionDays)
	sum += 5 * float64(in.NormControlWorks)
	sum += 5 * float64(in.PlagiarismChecks)
	sum += 10 * float64(in.DiplomaSupplements)
	sum += Flag(in.Curator, 50) + Flag(in.DormitoryWork, 10)
	sum += Flag(in.UniversityCouncil, 40)
	sum += Lookup(facultyCouncilRates, in.FacultyCouncilRole)
	sum += Flag(in.SpecializedCouncilLead, 250) + Flag(in.SpecializedCouncilMember, 100)
	sum += 5 * float64(in.OrganisationalTasks)
	sum += 20 * float64(in.CareerGuidanceEvents)
	sum += Flag(in.AdmissionSecretary, 300) + Flag(in.AdmissionDeputySecretary, 250) + Flag(in.AdmissionExamChair, 30) +
		15*float64(in.AdmissionSelection) + 20*float64(in.AdmissionInterviews) + 20*float64(in.AdmissionDataEntry) +
		10*float64(in.AdmissionAssistance) + 20*float64(in.AdmissionAppeals)
	sum += Flag(in.RegistryDataEntry, 50)
	sum += 50 * float64(in.Olympiads)
	sum += 10 * float64(in.CulturalEvents)
	sum += Flag(in.TradeUnion, 50) + Flag(in.VolunteerProject, 50)

	return Round2(sum)
}
