package validator

import "fmt"

// Feedback strings are bilingual (English and Persian) and deterministic for
// a given outcome, so identical evaluations always carry identical text.

func feedbackCorrect() string {
	return "Correct, well done. درست است، آفرین."
}

func feedbackIncorrect() string {
	return "Incorrect, review the material and try again. نادرست است، دوباره تلاش کنید."
}

func feedbackPartial(correct, total int) string {
	return fmt.Sprintf("%d of %d correct. %d از %d مورد درست است.", correct, total, correct, total)
}

func feedbackUnanswered() string {
	return "No answer was given for some parts. برخی قسمت‌ها بدون پاسخ مانده‌اند."
}
