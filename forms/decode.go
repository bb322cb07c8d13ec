package forms

import (
	"fmt"
	"net/url"

	"github.com/go-playground/form/v4"
)

var decoder = form.NewDecoder()

/*
Decode bind posted form values into a form struct

	@param values url.Values - the posted values
	@param dst interface{} - pointer to the form struct
*/
func Decode(values url.Values, dst interface{}) error {
	if err := decoder.Decode(dst, values); err != nil {
		return fmt.Errorf("failed to decode form values [%w]", err)
	}
	return nil
}
