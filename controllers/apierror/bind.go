package apierror

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// BindMessage turns a ShouldBind error into a client message. Validation
// failures are looked up in messages by "Field.tag" and then by "Field";
// malformed bodies and unmapped failures get fallback.
func BindMessage(err error, fallback string, messages map[string]string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fallback
	}
	fe := verrs[0]
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[fe.Field()]; ok {
		return msg
	}
	return fallback
}
