package models

// Constantes pour les rôles disponibles
const (
	RoleUser   = "user"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// GetDefaultRoles retourne les rôles par défaut pour un nouvel utilisateur
func GetDefaultRoles() Roles {
	return Roles{RoleUser}
}

// GetAllRoles retourne tous les rôles disponibles
func GetAllRoles() []string {
	return []string{
		RoleUser,
		RoleEditor,
		RoleAdmin,
	}
}

// IsValidRole vérifie qu'un rôle fait partie des rôles connus
func IsValidRole(role string) bool {
	for _, r := range GetAllRoles() {
		if r == role {
			return true
		}
	}
	return false
}
