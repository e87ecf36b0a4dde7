// Package adapter provides the runtime support shared by fractory generated
// code: the model marker, the reflective member invoker used by aggregated
// dispatchers, and the dispatch fault type.
package adapter

import "fmt"

// Model marks a type as eligible for adapter dispatch. Model declarations
// embed ModelTag to acquire the marker; aggregated dispatchers reject any
// incoming type that does not carry it.
type Model interface {
	FractoryModel()
}

// ModelTag is embedded by model declarations to satisfy Model.
type ModelTag struct{}

// FractoryModel implements Model.
func (ModelTag) FractoryModel() {}

// DispatchError reports a reflective dispatch failure inside a generated
// dispatcher. It indicates a packaging mismatch between generation time and
// execution time: the member recorded in the intermediate artifact does not
// exist, or has a different shape, on the type seen at run time. There is no
// recovery; callers are not expected to retry.
type DispatchError struct {
	Type   string
	Method string
	Reason string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("fractory: dispatch of %s.%s failed: %s", e.Type, e.Method, e.Reason)
}
