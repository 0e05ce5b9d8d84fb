// Package bpmn loads BPMN-style process definitions into per-process models.
//
// Parse reads an XML document once and returns a Document holding the
// document-wide resource table and one Model per process element. A Model is
// a set of lookup tables (elements in load order, sequence-flow edges in
// document order, lane membership, raw tags) that downstream packages read
// but never mutate.
//
// Matching is always done on local tag names, so any namespace prefix (or
// none) is accepted:
//
//	doc, err := bpmn.Parse(r)
//	if err != nil {
//	    return err // *errors.AppError with code PARSE_ERROR
//	}
//	for _, m := range doc.Processes {
//	    roles := bpmn.NewRoleResolver(m, "Unassigned/System")
//	    ...
//	}
package bpmn
