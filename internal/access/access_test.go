package access

import (
	"testing"

	"haulhub/internal/domain"
)

func TestCanAccess_Reports(t *testing.T) {
	if !CanAccess(domain.RoleAdmin, ResourceReports) {
		t.Error("admin should access reports")
	}
	if CanAccess(domain.RoleDriver, ResourceReports) {
		t.Error("driver should not access reports")
	}
	if CanAccess(domain.RoleDispatcher, ResourceReports) {
		t.Error("dispatcher should not access reports")
	}
}

func TestCanAccess_Trucks(t *testing.T) {
	if !CanAccess(domain.RoleAdmin, ResourceTrucks) {
		t.Error("admin should access trucks")
	}
	if !CanAccess(domain.RoleDispatcher, ResourceTrucks) {
		t.Error("dispatcher should access trucks")
	}
	if CanAccess(domain.RoleDriver, ResourceTrucks) {
		t.Error("driver should not access trucks")
	}
}

func TestCanAccess_GeneralPagesOpenToAllRoles(t *testing.T) {
	roles := []domain.Role{domain.RoleAdmin, domain.RoleDriver, domain.RoleDispatcher}
	for _, role := range roles {
		for _, res := range []Resource{ResourceDashboard, ResourceHauls, ResourceSettings} {
			if !CanAccess(role, res) {
				t.Errorf("expected %s to access %s", role, res)
			}
		}
	}
}

func TestCanAccess_UnknownRoleDeniedEverywhere(t *testing.T) {
	for _, res := range []Resource{ResourceDashboard, ResourceHauls, ResourceTrucks, ResourceReports, ResourceSettings} {
		if CanAccess("", res) {
			t.Errorf("empty role should be denied %s", res)
		}
		if CanAccess("customer", res) {
			t.Errorf("unknown role should be denied %s", res)
		}
	}
}
