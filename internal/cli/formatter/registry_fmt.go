package formatter

import (
	"fmt"

	"github.com/canaleta14-ai/gmao/internal/app"
	"github.com/canaleta14-ai/gmao/internal/domain"
)

func FormatTechnicians(techs []*domain.Technician) string {
	if len(techs) == 0 {
		return StyleDim.Render("No technicians.") + "\n"
	}
	t := NewTable("ID", "NAME", "ROLE", "EMAIL", "ACTIVE").AlignRight(0)
	for _, tech := range techs {
		active := StyleGreen.Render("yes")
		if !tech.Active {
			active = StyleDim.Render("no")
		}
		email := tech.Email
		if email == "" {
			email = none
		}
		t.AddRow(fmt.Sprint(tech.ID), tech.Name, string(tech.Role), email, active)
	}
	return t.Render()
}

// FormatRoster lists eligible technicians in assignment order.
func FormatRoster(loads []domain.TechnicianLoad) string {
	if len(loads) == 0 {
		return StyleDim.Render("No eligible technicians; generated orders stay unassigned.") + "\n"
	}
	t := NewTable("RANK", "ID", "NAME", "ROLE", "OPEN").AlignRight(0, 1, 4)
	for i, l := range loads {
		t.AddRow(fmt.Sprint(i+1), fmt.Sprint(l.Technician.ID), l.Technician.Name,
			string(l.Technician.Role), fmt.Sprint(l.OpenOrders))
	}
	return t.Render()
}

func FormatAssets(assets []*domain.Asset) string {
	if len(assets) == 0 {
		return StyleDim.Render("No assets.") + "\n"
	}
	t := NewTable("CODE", "NAME", "LOCATION")
	for _, a := range assets {
		loc := a.Location
		if loc == "" {
			loc = none
		}
		t.AddRow(a.Code, a.Name, loc)
	}
	return t.Render()
}

func FormatImportResult(r *app.ImportResult) string {
	return fmt.Sprintf("%s %d assets, %d technicians, %d plans\n",
		StyleGreen.Render("Imported"), r.Assets, r.Technicians, r.Plans)
}
