package auth

// RootGradeLevel is the sentinel level of the single unrestricted grade.
// A principal at this level bypasses every authority and permission check,
// in every code path. It does not bypass data-integrity checks (referential
// guards, self-delete).
const RootGradeLevel = 99

// DefaultAdminGradeLevel is the grade level at which a user is treated as an
// administrator without the is_admin flag. Overridable via configuration.
const DefaultAdminGradeLevel = 10

// Engine holds the stateless authorization decision functions. All functions
// take the acting principal explicitly; none read ambient request state.
// Safe for concurrent use.
type Engine struct {
	adminGradeLevel int
}

func NewEngine(adminGradeLevel int) *Engine {
	if adminGradeLevel <= 0 {
		adminGradeLevel = DefaultAdminGradeLevel
	}
	return &Engine{adminGradeLevel: adminGradeLevel}
}

// IsRoot reports whether the principal holds the unrestricted root grade.
func (e *Engine) IsRoot(p *Principal) bool {
	return p != nil && p.GradeLevel == RootGradeLevel
}

// IsAdmin reports whether the principal may access broad administrative
// surfaces: root, the is_admin flag, or a grade at or above the admin level.
func (e *Engine) IsAdmin(p *Principal) bool {
	if e.IsRoot(p) {
		return true
	}
	if p == nil {
		return false
	}
	return p.IsAdmin || p.GradeLevel >= e.adminGradeLevel
}

// HasPermission reports whether the principal holds the given fine-grained
// permission. Root and flagged admins hold every permission.
func (e *Engine) HasPermission(p *Principal, key string) bool {
	if e.IsRoot(p) {
		return true
	}
	if p == nil {
		return false
	}
	if p.IsAdmin {
		return true
	}
	return p.Permissions[key]
}

// Dominates reports whether the principal may act on a target at the given
// grade level. Non-root principals only dominate strictly lower levels;
// equality always rejects, so peers of equal rank cannot act on each other.
func (e *Engine) Dominates(p *Principal, targetLevel int) bool {
	if e.IsRoot(p) {
		return true
	}
	return p != nil && p.GradeLevel > targetLevel
}
