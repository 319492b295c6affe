package access

import (
	"fmt"

	"go-hrms/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

const (
	ObjEmployee   = "employee"
	ObjSalary     = "salary"
	ObjLeave      = "leave"
	ObjAttendance = "attendance"
	ObjAllocation = "allocation"

	ActManage  = "manage"
	ActRead    = "read"
	ActApprove = "approve"
	ActReadAll = "read_all"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

var adminPolicies = [][]string{
	{ObjEmployee, ActManage},
	{ObjSalary, ActRead},
	{ObjSalary, ActManage},
	{ObjLeave, ActApprove},
	{ObjAttendance, ActReadAll},
	{ObjAllocation, ActManage},
}

type Authorizer interface {
	Allows(actor Actor, obj, act string) bool
	Require(actor Actor, obj, act string) error
	CanManageEmployees(actor Actor) bool
	CanViewSalary(actor Actor) bool
}

// Gate answers role-based permission questions. Employees hold no policy rows;
// their self-service access is decided by ownership checks in each service.
type Gate struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewGate(logger ...*zap.Logger) (*Gate, error) {
	l := zap.L().Named("access.gate")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("access.gate")
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("load access model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}
	for _, p := range adminPolicies {
		if _, err := e.AddPolicy(RoleAdmin.String(), p[0], p[1]); err != nil {
			return nil, fmt.Errorf("add policy %s:%s: %w", p[0], p[1], err)
		}
	}

	return &Gate{enforcer: e, logger: l}, nil
}

func (g *Gate) Allows(actor Actor, obj, act string) bool {
	ok, err := g.enforcer.Enforce(actor.Role.String(), obj, act)
	if err != nil {
		g.logger.Error("enforce failed",
			zap.String("role", actor.Role.String()),
			zap.String("obj", obj),
			zap.String("act", act),
			zap.Error(err),
		)
		return false
	}
	return ok
}

func (g *Gate) Require(actor Actor, obj, act string) error {
	if !g.Allows(actor, obj, act) {
		g.logger.Warn("permission denied",
			zap.String("user_id", actor.UserID),
			zap.String("role", actor.Role.String()),
			zap.String("obj", obj),
			zap.String("act", act),
		)
		return apperror.ErrUnauthorized
	}
	return nil
}

func (g *Gate) CanManageEmployees(actor Actor) bool {
	return g.Allows(actor, ObjEmployee, ActManage)
}

func (g *Gate) CanViewSalary(actor Actor) bool {
	return g.Allows(actor, ObjSalary, ActRead)
}
