package rbac

const (
	PermServiceHoursViewAll   = "service_hours:view-all"
	PermServiceHoursManageAll = "service_hours:manage-all"
	PermServiceHoursVerify    = "service_hours:verify"
	PermEventsRead            = "events:read"
	PermUsersList             = "users:list"
	PermChangePassword        = "user:change_password"
)

// RolePermissions is the default policy. Owners may always read and edit
// their own service hours; these grant access beyond that.
var RolePermissions = map[string][]string{
	"student": {
		PermChangePassword,
	},
	"counselor": {
		PermServiceHoursViewAll,
		PermServiceHoursVerify,
		PermUsersList,
		PermChangePassword,
	},
	"admin": {
		"*", // everything
	},
}
