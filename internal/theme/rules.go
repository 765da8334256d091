package theme

import (
	"maps"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Rules maps settings keys to validator tags, e.g. {"columns": "required,min=1,max=4"}.
type Rules map[string]string

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// CheckSettings validates candidate against rules and returns a copy of it.
// Keys without a rule pass through unchecked.
func CheckSettings(candidate Settings, rules Rules) (Settings, error) {
	if len(rules) == 0 {
		return maps.Clone(candidate), nil
	}

	ruleMap := make(map[string]any, len(rules))
	for key, tag := range rules {
		ruleMap[key] = tag
	}

	data := map[string]any(candidate)
	if data == nil {
		data = map[string]any{}
	}

	failures := validatorInstance().ValidateMap(data, ruleMap)
	if len(failures) == 0 {
		return maps.Clone(candidate), nil
	}

	fields := make(map[string]string, len(failures))
	for key, failure := range failures {
		fields[key] = failedTag(failure)
	}
	return nil, &SettingsError{Fields: fields}
}

func failedTag(failure any) string {
	if errs, ok := failure.(validator.ValidationErrors); ok && len(errs) > 0 {
		return errs[0].Tag()
	}
	return "invalid"
}
