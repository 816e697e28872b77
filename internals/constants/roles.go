package constants

import "fmt"

// Role yang dikenal aplikasi (dibawa oleh JWT, tidak diterbitkan di sini)
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleInstructor = "instructor"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess      = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlySupervisorsCanAccess = "❌ Hanya supervisor atau admin yang boleh mengakses fitur %s."
)

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorSupervisor(feature string) string {
	return fmt.Sprintf(ErrOnlySupervisorsCanAccess, feature)
}
