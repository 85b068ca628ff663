package rbac

// Role identifies a user's role within a company
type Role string

const (
	RoleSuperAdmin   Role = "super_admin"
	RoleCompanyAdmin Role = "company_admin"
	RoleLeader       Role = "leader"
	RoleSupervisor   Role = "supervisor"
	RoleEmployee     Role = "employee"
)

// Permission identifies a single capability in the permission table
type Permission string

const (
	ManageUsers        Permission = "manage_users"
	ManageCompanies    Permission = "manage_companies"
	ManageDepartments  Permission = "manage_departments"
	ManageDemographics Permission = "manage_demographics"
	CreateSurveys      Permission = "create_surveys"
	ViewResults        Permission = "view_results"
	ExportData         Permission = "export_data"
	LaunchMicroclimate Permission = "launch_microclimates"
	SubmitResponses    Permission = "submit_responses"
	ViewDashboard      Permission = "view_dashboard"
)

// permissions is the static role-to-permission lookup table.
// A missing entry means the permission is denied.
var permissions = map[Role]map[Permission]bool{
	RoleSuperAdmin: {
		ManageUsers:        true,
		ManageCompanies:    true,
		ManageDepartments:  true,
		ManageDemographics: true,
		CreateSurveys:      true,
		ViewResults:        true,
		ExportData:         true,
		LaunchMicroclimate: true,
		SubmitResponses:    true,
		ViewDashboard:      true,
	},
	RoleCompanyAdmin: {
		ManageUsers:        true,
		ManageDepartments:  true,
		ManageDemographics: true,
		CreateSurveys:      true,
		ViewResults:        true,
		ExportData:         true,
		LaunchMicroclimate: true,
		SubmitResponses:    true,
		ViewDashboard:      true,
	},
	RoleLeader: {
		CreateSurveys:      true,
		ViewResults:        true,
		LaunchMicroclimate: true,
		SubmitResponses:    true,
		ViewDashboard:      true,
	},
	RoleSupervisor: {
		ViewResults:     true,
		SubmitResponses: true,
		ViewDashboard:   true,
	},
	RoleEmployee: {
		SubmitResponses: true,
	},
}

// Can reports whether a role holds a permission. Unknown roles hold none.
func Can(role Role, permission Permission) bool {
	perms, ok := permissions[role]
	if !ok {
		return false
	}
	return perms[permission]
}

// Roles returns all valid roles in privilege order
func Roles() []Role {
	return []Role{
		RoleSuperAdmin, RoleCompanyAdmin, RoleLeader, RoleSupervisor, RoleEmployee,
	}
}

// Valid reports whether s names a known role
func Valid(s string) bool {
	_, ok := permissions[Role(s)]
	return ok
}

// Permissions returns the permission set granted to a role
func Permissions(role Role) []Permission {
	perms := permissions[role]
	granted := make([]Permission, 0, len(perms))
	for p, ok := range perms {
		if ok {
			granted = append(granted, p)
		}
	}
	return granted
}
