package cli

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/runcard/internal/wire"
)

// DoctorCmd returns the doctor command.
func DoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Validate the loaded reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			rd := wire.ReferenceData()
			ok := color.New(color.FgGreen).Sprint("✓")
			warn := color.New(color.FgYellow).Sprint("!")

			fmt.Printf("%s zones with run cards: %d\n", ok, len(rd.RunCards))
			fmt.Printf("%s plan templates: %d\n", ok, len(rd.Plans))
			fmt.Printf("%s stations: %d\n", ok, len(rd.StationUnits))
			fmt.Printf("%s units: %d\n", ok, len(rd.UnitStation))
			fmt.Printf("%s battalion-chief pool: %d\n", ok, len(rd.BCUnits))

			// Run-card stations with no roster can never contribute.
			orphans := map[string]bool{}
			for _, order := range rd.RunCards {
				for _, station := range order {
					if len(rd.StationUnits[station]) == 0 {
						orphans[station] = true
					}
				}
			}
			if len(orphans) > 0 {
				keys := make([]string, 0, len(orphans))
				for s := range orphans {
					keys = append(keys, s)
				}
				sort.Strings(keys)
				fmt.Printf("%s run-card stations with empty rosters: %v\n", warn, keys)
			}

			// Plan tokens no unit advertises.
			known := rd.KnownCapabilities()
			known["BC"] = true
			unknown := map[string]bool{}
			for _, tpl := range rd.Plans {
				for _, g := range tpl.Standard.Groups {
					for _, c := range g.Caps {
						if !known[c] {
							unknown[c] = true
						}
					}
				}
				for _, need := range tpl.Standard.IfCloser {
					if !known[need.Cap] {
						unknown[need.Cap] = true
					}
				}
			}
			if len(unknown) > 0 {
				keys := make([]string, 0, len(unknown))
				for t := range unknown {
					keys = append(keys, t)
				}
				sort.Strings(keys)
				fmt.Printf("%s plan tokens no unit advertises: %v\n", warn, keys)
			}

			// Cross-staff references to unknown units.
			for _, group := range rd.CrossStaff {
				for _, unit := range group {
					if _, found := rd.UnitStation[unit]; !found {
						fmt.Printf("%s cross-staff group references unknown unit %s\n", warn, unit)
					}
				}
			}

			if rd.HazmatHomeUnit == "" {
				fmt.Printf("%s no hazmat home unit configured\n", warn)
			}
			return nil
		},
	}
}
