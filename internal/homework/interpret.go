package homework

import "fmt"

// ParseStatus turns a single homework record into the notification text.
//
// Both homework_name and status must be present, and the status must have a
// verdict. The resulting sentence is fixed wording; see verdicts.go.
func ParseStatus(hw Homework) (string, error) {
	if hw.Name == "" {
		return "", &MissingFieldError{Field: "homework_name"}
	}
	if hw.Status == "" {
		return "", &MissingFieldError{Field: "status"}
	}
	verdict, ok := verdicts[hw.Status]
	if !ok {
		return "", &UnknownStatusError{Status: hw.Status}
	}
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", hw.Name, verdict), nil
}
