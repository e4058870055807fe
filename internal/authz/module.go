package authz

// Module identifies a functional area of the dashboard and is the unit of
// permission granularity.
type Module string

const (
	ModuleDashboard       Module = "dashboard"
	ModuleUsers           Module = "users"
	ModuleRoles           Module = "roles"
	ModuleSportsEquipment Module = "sportsEquipment"
	ModuleEmployees       Module = "employees"
	ModuleEmployeesSched  Module = "employeesSchedule"
	ModuleAppointments    Module = "appointmentManagement"
	ModuleSportsCategory  Module = "sportsCategory"
	ModuleAthletes        Module = "athletesSection"
	ModuleAthletesAssist  Module = "athletesAssistance"
	ModuleDonors          Module = "donorsSponsors"
	ModuleDonations       Module = "donationsManagement"
	ModuleEvents          Module = "eventsManagement"
	ModuleTempWorkers     Module = "temporaryWorkers"
	ModuleTempTeams       Module = "temporaryTeams"
	ModuleProviders       Module = "providers"
	ModulePurchases       Module = "purchasesManagement"
)

var allModules = []Module{
	ModuleDashboard,
	ModuleUsers,
	ModuleRoles,
	ModuleSportsEquipment,
	ModuleEmployees,
	ModuleEmployeesSched,
	ModuleAppointments,
	ModuleSportsCategory,
	ModuleAthletes,
	ModuleAthletesAssist,
	ModuleDonors,
	ModuleDonations,
	ModuleEvents,
	ModuleTempWorkers,
	ModuleTempTeams,
	ModuleProviders,
	ModulePurchases,
}

// AllModules returns the closed module set in a stable order.
func AllModules() []Module {
	out := make([]Module, len(allModules))
	copy(out, allModules)
	return out
}

// IsValid reports whether the module belongs to the enumerated set.
func (m Module) IsValid() bool {
	for _, known := range allModules {
		if m == known {
			return true
		}
	}
	return false
}

func (m Module) String() string { return string(m) }
