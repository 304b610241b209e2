package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/attendance"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/auth"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/department"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/leave"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/payroll"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/performance"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/recruitment"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/training"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/jwt"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/storage"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Unknown errors are logged
// and answered with a generic 500.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Email ou mot de passe incorrect")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, jwt.ErrMissingClaims):
		Unauthorized(w, "Jeton invalide ou expiré")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Session expirée")
	case errors.Is(err, auth.ErrUnauthenticated):
		Unauthorized(w, "Authentification requise")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Compte désactivé")
	case errors.Is(err, auth.ErrRegistrationClosed):
		Forbidden(w, "L'inscription est fermée, contactez un administrateur")
	case errors.Is(err, auth.ErrWrongCurrentPassword):
		BadRequest(w, "Ancien mot de passe incorrect", nil)
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "Utilisateur introuvable")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "Utilisateur introuvable")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Cet email est déjà utilisé")
	case errors.Is(err, user.ErrMatriculeExists):
		Conflict(w, "Ce matricule est déjà attribué")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Accès refusé")
	case errors.Is(err, user.ErrLastActiveAdmin):
		Conflict(w, "Impossible de désactiver le dernier administrateur actif")
	case errors.Is(err, user.ErrCannotDeactivateSelf):
		Conflict(w, "Vous ne pouvez pas désactiver votre propre compte")
	case errors.Is(err, user.ErrCannotDeleteSelf):
		Conflict(w, "Vous ne pouvez pas supprimer votre propre compte")

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Département introuvable")
	case errors.Is(err, department.ErrDepartmentCodeExists):
		Conflict(w, "Ce code de département existe déjà")
	case errors.Is(err, department.ErrDepartmentHasEmployee):
		Conflict(w, "Le département contient encore des employés")
	case errors.Is(err, department.ErrResponsableNotFound):
		NotFound(w, "Responsable introuvable")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Pointage introuvable")
	case errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, "Un pointage existe déjà pour cet employé à cette date")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Arrivée déjà enregistrée aujourd'hui")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Aucune arrivée enregistrée pour cette date", nil)
	case errors.Is(err, attendance.ErrDepartureBeforeArrival):
		BadRequest(w, "L'heure de départ précède l'heure d'arrivée", nil)
	case errors.Is(err, attendance.ErrEmployeeNotFound):
		NotFound(w, "Employé introuvable")
	case errors.Is(err, attendance.ErrEmployeeInactive):
		Conflict(w, "Le compte de cet employé est désactivé")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Demande de congé introuvable")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Cette demande de congé a déjà été traitée")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "La date de fin précède la date de début", nil)
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "Une demande de congé couvre déjà ces dates")
	case errors.Is(err, leave.ErrNotOwner):
		Forbidden(w, "Cette demande appartient à un autre employé")
	case errors.Is(err, leave.ErrEmployeeNotFound):
		NotFound(w, "Employé introuvable")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPaymentNotFound):
		NotFound(w, "Fiche de salaire introuvable")
	case errors.Is(err, payroll.ErrPaymentAlreadyExists):
		Conflict(w, "Un salaire existe déjà pour cet employé et ce mois")
	case errors.Is(err, payroll.ErrPaymentAlreadyPaid):
		Conflict(w, "Ce salaire est déjà payé et ne peut plus être modifié")
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employé introuvable")

	// Performance domain errors
	case errors.Is(err, performance.ErrEvaluationNotFound):
		NotFound(w, "Évaluation introuvable")
	case errors.Is(err, performance.ErrEmployeeNotFound):
		NotFound(w, "Employé introuvable")
	case errors.Is(err, performance.ErrSelfEvaluation):
		Forbidden(w, "Vous ne pouvez pas vous évaluer vous-même")

	// Training domain errors
	case errors.Is(err, training.ErrSessionNotFound):
		NotFound(w, "Formation introuvable")
	case errors.Is(err, training.ErrSessionFull):
		Conflict(w, "La formation est complète")
	case errors.Is(err, training.ErrAlreadyEnrolled):
		Conflict(w, "Employé déjà inscrit à cette formation")
	case errors.Is(err, training.ErrNotEnrolled):
		NotFound(w, "Employé non inscrit à cette formation")
	case errors.Is(err, training.ErrEmployeeNotFound):
		NotFound(w, "Employé introuvable")
	case errors.Is(err, training.ErrEmployeeInactive):
		Conflict(w, "Le compte de cet employé est désactivé")
	case errors.Is(err, training.ErrCapacityBelowCount):
		Conflict(w, "La capacité est inférieure au nombre d'inscrits")

	// Recruitment domain errors
	case errors.Is(err, recruitment.ErrOfferNotFound):
		NotFound(w, "Offre introuvable")
	case errors.Is(err, recruitment.ErrOfferClosed):
		Conflict(w, "Cette offre n'accepte plus de candidatures")
	case errors.Is(err, recruitment.ErrCandidateNotFound):
		NotFound(w, "Candidat introuvable")
	case errors.Is(err, recruitment.ErrAlreadyApplied):
		Conflict(w, "Vous avez déjà postulé à cette offre")

	// Upload errors
	case errors.Is(err, storage.ErrFileTooLarge):
		BadRequest(w, "Fichier trop volumineux", nil)
	case errors.Is(err, storage.ErrInvalidPath):
		BadRequest(w, "Nom de fichier invalide", nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "Une erreur inattendue est survenue")
	}
}
