package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message; "message" carries
// the validator's own English wording.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "too_small":
			return "値が小さすぎます"
		case "too_big":
			return "値が大きすぎます"
		case "too_short":
			return "短すぎます"
		case "too_long":
			return "長すぎます"
		case "pattern":
			return "パターンに一致しません"
		case "invalid_enum":
			return "許可された値ではありません"
		case "invalid_literal":
			return "期待された値と一致しません"
		case "invalid_format":
			return "形式が不正です"
		case "invalid_union":
			return "いずれの候補にも一致しません"
		case "not_multiple_of":
			return "倍数ではありません"
		case "not_unique":
			return "要素が重複しています"
		case "not_allowed":
			return "許可されていない値です"
		case "parse_error":
			return "解析エラー"
		case "duplicate_key":
			return "キーが重複しています"
		}
	default: // "en"
		if m := data["message"]; m != "" {
			return m
		}
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required property missing"
		case "unknown_key":
			return "unknown key"
		case "too_small":
			return "too small"
		case "too_big":
			return "too big"
		case "too_short":
			return "too short"
		case "too_long":
			return "too long"
		case "pattern":
			return "does not match pattern"
		case "invalid_enum":
			return "not one of the allowed values"
		case "invalid_literal":
			return "does not equal the expected value"
		case "invalid_format":
			return "invalid format"
		case "invalid_union":
			return "matches no variant"
		case "not_multiple_of":
			return "not a multiple"
		case "not_unique":
			return "items are not unique"
		case "not_allowed":
			return "value not allowed"
		case "parse_error":
			return "parse error"
		case "duplicate_key":
			return "duplicate key"
		}
	}
	if m := data["message"]; m != "" {
		return m
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
