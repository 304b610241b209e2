package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Employee Management
	PermissionEmployeeViewAll  Permission = "employee.view_all"
	PermissionEmployeeManage   Permission = "employee.manage"
	PermissionEmployeeDelete   Permission = "employee.delete"
	PermissionEmployeeActivate Permission = "employee.activate"

	// Departments
	PermissionDepartmentManage Permission = "department.manage"
	PermissionDepartmentDelete Permission = "department.delete"

	// Attendance
	PermissionAttendanceViewOwn  Permission = "attendance.view_own"
	PermissionAttendanceClockOwn Permission = "attendance.clock_own"
	PermissionAttendanceViewAll  Permission = "attendance.view_all"
	PermissionAttendanceMark     Permission = "attendance.mark"
	PermissionAttendanceManage   Permission = "attendance.manage"

	// Leave
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"
	PermissionLeaveManage  Permission = "leave.manage"

	// Payroll
	PermissionPayrollViewOwn Permission = "payroll.view_own"
	PermissionPayrollManage  Permission = "payroll.manage"

	// Performance
	PermissionPerformanceViewOwn Permission = "performance.view_own"
	PermissionPerformanceManage  Permission = "performance.manage"

	// Training
	PermissionTrainingView   Permission = "training.view"
	PermissionTrainingEnroll Permission = "training.enroll"
	PermissionTrainingManage Permission = "training.manage"

	// Recruitment
	PermissionRecruitmentManage Permission = "recruitment.manage"

	// Reports
	PermissionDashboardView Permission = "dashboard.view"
)

var employeePermissions = []Permission{
	PermissionViewOwnProfile,
	PermissionAttendanceViewOwn,
	PermissionAttendanceClockOwn,
	PermissionLeaveViewOwn,
	PermissionLeaveCreate,
	PermissionPayrollViewOwn,
	PermissionPerformanceViewOwn,
	PermissionTrainingView,
	PermissionTrainingEnroll,
}

var managerPermissions = append([]Permission{
	PermissionEmployeeViewAll,
	PermissionAttendanceViewAll,
	PermissionAttendanceMark,
	PermissionLeaveViewAll,
	PermissionLeaveApprove,
	PermissionPerformanceManage,
	PermissionDashboardView,
}, employeePermissions...)

var rhPermissions = append([]Permission{
	PermissionEmployeeManage,
	PermissionDepartmentManage,
	PermissionAttendanceManage,
	PermissionLeaveManage,
	PermissionPayrollManage,
	PermissionTrainingManage,
	PermissionRecruitmentManage,
}, managerPermissions...)

var adminPermissions = append([]Permission{
	PermissionEmployeeDelete,
	PermissionEmployeeActivate,
	PermissionDepartmentDelete,
}, rhPermissions...)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin:    adminPermissions,
	RoleRH:       rhPermissions,
	RoleManager:  managerPermissions,
	RoleEmployee: employeePermissions,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
