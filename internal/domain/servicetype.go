package domain

import "fmt"

// ServiceType is the closed set of bookable services. Durations and
// scheduling quirks live in one static rule table instead of being matched
// on name at every call site.
type ServiceType string

const (
	ServiceConsultation        ServiceType = "consultation"
	ServicePapSmear            ServiceType = "pap_smear"
	ServiceIUDPlacement        ServiceType = "iud_placement"
	ServiceIUDRemoval          ServiceType = "iud_removal"
	ServiceRegenerativeTherapy ServiceType = "regenerative_therapy"
)

// serviceRule carries the duration and the scheduling flags of one service.
//
// exemptFromOverlap: the service only conflicts with an appointment at the
// exact same start instant and fits around everything else.
// exemptFromMaxEnd: the service is not bound by the end-of-day procedure
// cutoff (close + grace).
type serviceRule struct {
	label             string
	durationMinutes   int
	extendedMinutes   int // 0 when the duration does not depend on config
	exemptFromOverlap bool
	exemptFromMaxEnd  bool
}

var serviceRules = map[ServiceType]serviceRule{
	ServiceConsultation: {
		label:           "Consulta",
		durationMinutes: 20,
	},
	ServicePapSmear: {
		label:           "PAP y Colposcopia",
		durationMinutes: 20,
		extendedMinutes: 30,
	},
	ServiceIUDPlacement: {
		label:           "Colocacion de DIU",
		durationMinutes: 40,
	},
	ServiceIUDRemoval: {
		label:           "Extraccion de DIU",
		durationMinutes: 40,
	},
	ServiceRegenerativeTherapy: {
		label:             "Terapia Regenerativa",
		durationMinutes:   40,
		exemptFromOverlap: true,
		exemptFromMaxEnd:  true,
	},
}

// ParseServiceType validates a wire value against the closed enum.
func ParseServiceType(s string) (ServiceType, error) {
	st := ServiceType(s)
	if _, ok := serviceRules[st]; !ok {
		return "", fmt.Errorf("unknown service type %q", s)
	}
	return st, nil
}

// ServiceTypes lists every bookable service in a stable order.
func ServiceTypes() []ServiceType {
	return []ServiceType{
		ServiceConsultation,
		ServicePapSmear,
		ServiceIUDPlacement,
		ServiceIUDRemoval,
		ServiceRegenerativeTherapy,
	}
}

// Label returns the patient-facing Spanish name of the service. It is also
// the service marker embedded in external calendar event titles.
func (s ServiceType) Label() string {
	return serviceRules[s].label
}

// Duration returns the occupied minutes of the service. The pap-smear bundle
// grew from 20 to 30 minutes in newer schedule configurations; the flag
// selects which generation applies.
func (s ServiceType) Duration(extendedPap bool) int {
	rule := serviceRules[s]
	if extendedPap && rule.extendedMinutes > 0 {
		return rule.extendedMinutes
	}
	return rule.durationMinutes
}

// ExemptFromOverlap reports whether the service uses the narrow
// same-instant conflict rule instead of duration-based overlap.
func (s ServiceType) ExemptFromOverlap() bool {
	return serviceRules[s].exemptFromOverlap
}

// ExemptFromMaxEnd reports whether the service may run past the
// end-of-day procedure cutoff.
func (s ServiceType) ExemptFromMaxEnd() bool {
	return serviceRules[s].exemptFromMaxEnd
}

// ServiceTypeFromLabel resolves a calendar event title marker back into a
// service type. Used when importing events created directly in the external
// calendar; unrecognized markers fall back to a plain consultation.
func ServiceTypeFromLabel(label string) ServiceType {
	canonical := CanonicalDayName(label)
	for st, rule := range serviceRules {
		if CanonicalDayName(rule.label) == canonical {
			return st
		}
	}
	return ServiceConsultation
}
