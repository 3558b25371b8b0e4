package agent

// Class is the troubleshooting domain a query is routed to. The set is
// closed; dispatch happens via explicit match, not open subclassing.
type Class string

const (
	ClassElectrical Class = "electrical"
	ClassMechanical Class = "mechanical"
	ClassSoftware   Class = "software"
	ClassGeneral    Class = "general-fallback"
)

// Classes lists all variants in routing priority order.
func Classes() []Class {
	return []Class{ClassElectrical, ClassMechanical, ClassSoftware, ClassGeneral}
}

func (c Class) Valid() bool {
	switch c {
	case ClassElectrical, ClassMechanical, ClassSoftware, ClassGeneral:
		return true
	}
	return false
}
