// Package openapi builds forms from OpenAPI 3 documents.
//
// Documents are parsed with kin-openapi. A request body or component schema
// becomes a form.Form whose fields follow the property types: enums become
// selects, arrays of enums become multi selects, string formats pick the
// email, url, date, file and password inputs, and minimum/maximum,
// minLength/maxLength and pattern become validation rules.
package openapi
