package itinerary

import (
	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/types"
)

func ParseBookingInstructions(s Scope, frag document.Fragment) (types.BookingInstructions, error) {
	r := s.Reader(frag)
	var b types.BookingInstructions
	var err error

	if b.Summary, err = r.RequiredFirstString("summary", "general"); err != nil {
		return types.BookingInstructions{}, err
	}

	var errs [5]error
	b.Flights, errs[0] = r.String("flights", "")
	b.Accommodations, errs[1] = r.String("accommodations", "")
	b.Activities, errs[2] = r.String("activities", "")
	b.Transportation, errs[3] = r.String("transportation", "")
	b.Steps, errs[4] = r.Strings("steps")
	if err := firstErr(errs[:]...); err != nil {
		return types.BookingInstructions{}, err
	}
	return b, nil
}

func ParseEmergencyInfo(s Scope, frag document.Fragment) (types.EmergencyInfo, error) {
	r := s.Reader(frag)
	var e types.EmergencyInfo
	var err error

	if e.EmergencyNumber, err = r.RequiredFirstString("emergencyNumber", "localEmergencyNumber"); err != nil {
		return types.EmergencyInfo{}, err
	}

	var errs [4]error
	e.Police, errs[0] = r.FirstString("", "police", "policeNumber")
	e.Hospitals, errs[1] = r.FirstStrings("hospitals", "nearestHospital")
	e.Insurance, errs[2] = r.String("insurance", "")
	e.Notes, errs[3] = r.String("notes", "")
	if err := firstErr(errs[:]...); err != nil {
		return types.EmergencyInfo{}, err
	}
	e.Embassy = ParseOptional(s, r, ParseEmbassyContact, "embassy", "embassyContact")
	return e, nil
}

func ParseEmbassyContact(s Scope, frag document.Fragment) (types.EmbassyContact, error) {
	r := s.Reader(frag)
	var c types.EmbassyContact
	var errs [3]error

	c.Name, errs[0] = r.String("name", "")
	c.Address, errs[1] = r.String("address", "")
	c.Phone, errs[2] = r.String("phone", "")
	return c, firstErr(errs[:]...)
}
