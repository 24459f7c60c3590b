package tracker

import "regexp"

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// ValidateEmail сообщает, похож ли адрес на local-part@domain.tld.
// Проверка только синтаксическая: существование ящика не проверяется.
func ValidateEmail(address string) bool {
	return emailPattern.MatchString(address)
}
