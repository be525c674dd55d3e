package source

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"schoolscout-engine/internal/domain"
)

// PostgresSource reads the program catalog from the remote store. Column
// names are snake_case on the wire; Scan maps them onto the internal model,
// a pure renaming with no semantic transformation.
type PostgresSource struct {
	Pool *pgxpool.Pool
}

func (p PostgresSource) Name() string { return "postgres" }

func (p PostgresSource) Fetch(ctx context.Context) ([]domain.School, error) {
	rows, err := p.Pool.Query(ctx, `
		SELECT id, name, city, state,
		       tuition_in_state, tuition_out_of_state,
		       gre_required, gre_waiver,
		       requires_ccrn, requires_shadowing,
		       requires_organic_chem, requires_biochem,
		       requires_statistics, requires_physics,
		       accepts_nicu, accepts_picu, accepts_er, accepts_other_icu,
		       program_type,
		       gpa_science, gpa_nursing, gpa_cumulative, gpa_graduate, gpa_last60,
		       allows_work_during, uses_nursing_cas, rolling_admissions,
		       partially_online, accepts_related_bach,
		       min_gpa, min_icu_years, application_deadline
		FROM schools
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query schools: %w", err)
	}
	defer rows.Close()

	var out []domain.School
	for rows.Next() {
		var s domain.School
		var programType string
		if err := rows.Scan(
			&s.ID, &s.Name, &s.City, &s.State,
			&s.TuitionInState, &s.TuitionOutOfState,
			&s.GRERequired, &s.GREWaiver,
			&s.RequiresCCRN, &s.RequiresShadowing,
			&s.RequiresOrganicChem, &s.RequiresBiochem,
			&s.RequiresStatistics, &s.RequiresPhysics,
			&s.AcceptsNICU, &s.AcceptsPICU, &s.AcceptsER, &s.AcceptsOtherICU,
			&programType,
			&s.GPAScience, &s.GPANursing, &s.GPACumulative, &s.GPAGraduate, &s.GPALast60,
			&s.AllowsWorkDuring, &s.UsesNursingCAS, &s.RollingAdmissions,
			&s.PartiallyOnline, &s.AcceptsRelatedBach,
			&s.MinGPA, &s.MinICUYears, &s.ApplicationDeadline,
		); err != nil {
			return nil, fmt.Errorf("scan school: %w", err)
		}
		s.ProgramType = domain.ProgramType(programType)
		out = append(out, s)
	}
	return out, rows.Err()
}
