package lexer

// ===== Классификаторы =====
// Идентификаторы только ASCII: юникодные имена в Ruby редки и cops их не касаются.

func isLowerStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z')
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isIdentContinueByte(b byte) bool {
	return isLowerStart(b) || isUpper(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}
