package engine

// domainPolicy is the per-domain rule data the setters dispatch on.
type domainPolicy struct {
	floor int
	max   int

	// creationCap is the total number of dots above floor a domain may hold
	// during creation. Zero means the domain is governed by priorities, is
	// derived, or is free.
	creationCap int
	// traitCap bounds a single trait during creation; zero means max.
	traitCap int

	freebieUnit int
	xp          XPCategory
}

var policies = map[Domain]domainPolicy{
	DomainAttribute:  {floor: 1, max: 5, freebieUnit: 5, xp: XPAttribute},
	DomainAbility:    {floor: 0, max: 5, traitCap: 3, freebieUnit: 2, xp: XPAbility},
	DomainDiscipline: {floor: 0, max: 5, creationCap: 3, freebieUnit: 7, xp: XPDiscipline},
	DomainBackground: {floor: 0, max: 5, creationCap: 5, freebieUnit: 1, xp: XPBackground},
	DomainVirtue:     {floor: 1, max: 5, creationCap: 7, freebieUnit: 2, xp: XPVirtue},
	DomainOther:      {floor: 0, max: 10},
	DomainHumanity:   {floor: 0, max: 10, freebieUnit: 2, xp: XPHumanity},
	DomainWillpower:  {floor: 0, max: 10, freebieUnit: 1, xp: XPWillpower},
}

// freebieDomains are the domains priced by the freebie economy, in sheet order.
var freebieDomains = []Domain{
	DomainAttribute, DomainAbility, DomainDiscipline, DomainBackground,
	DomainVirtue, DomainHumanity, DomainWillpower,
}

// ResolveProposedValue applies the click-to-toggle convention: proposing the
// current rating means "remove one dot". The result never drops below floor.
// changed is false when the effective value equals current.
func ResolveProposedValue(current, proposed, floor int) (next int, changed bool) {
	next = proposed
	if proposed == current {
		next = current - 1
	}
	if next < floor {
		next = floor
	}
	return next, next != current
}
