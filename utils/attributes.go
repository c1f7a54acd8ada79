package utils

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// AttributeMap is a free-form set of model attributes as read from a config file.
type AttributeMap map[string]interface{}

// TransformAttributeMapToStruct decodes the attributes into the struct pointed to by to, using
// the struct's json tags as field names. Attributes that match no field are an error.
func TransformAttributeMapToStruct(to interface{}, attributes AttributeMap) error {
	if reflect.TypeOf(to).Kind() != reflect.Ptr {
		return NewUnexpectedTypeError(reflect.New(reflect.TypeOf(to)).Interface(), to)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           to,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return errors.Wrap(decoder.Decode(map[string]interface{}(attributes)), "cannot convert attributes")
}
