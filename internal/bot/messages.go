package bot

// The user-facing catalog. The bot speaks Hebrew; the single English text is
// the language advisory shown to Latin-script input.

const (
	// MsgHebrewOnly is returned for Latin-only input regardless of content.
	MsgHebrewOnly = "The chatbot currently understands Hebrew only. Please phrase your request in Hebrew 😊"
	// MsgResetAck is the /reset acknowledgement; repeated resets return it again.
	MsgResetAck = "הצ'אט אופס. אפשר להתחיל מחדש 😊"
)

const (
	msgIntro    = "אני כאן רק כדי לעזור בחיפוש דירות 🏠. תוכל לרשום לי מה אתה מחפש – כמה חדרים, באיזו עיר, ומעל איזה תקציב?"
	msgRedirect = "אני כרגע מתמקד בחיפוש דירות בלבד. נסה לשאול אותי משהו שקשור לדירה 😊"
	msgCasual   = "היי! 😊 אני כאן כדי לעזור לך למצוא דירה. ספר לי מה אתה מחפש – עיר, מספר חדרים ותקציב."
	msgApology  = "מצטער, משהו השתבש אצלי 🙏 נסה שוב בעוד רגע."

	msgAskBudget        = "מעולה! מה התקציב שלך?"
	msgAskRooms         = "כמה חדרים אתה מחפש?"
	msgBudgetSummaryFmt = "רשמתי לפניי: תקציב %s, חדרים: %s. נציג שלנו יחזור אליך עם דירות מתאימות 🙂"

	msgInterestAckFmt = "מעולה! רשמתי שאתה מעוניין בדירה מספר %s."
	msgAskPhone       = "מה מספר הטלפון שלך?"
	msgAskFirstName   = "מה השם הפרטי שלך?"
	msgAskLastName    = "ומה שם המשפחה?"

	msgLeadConfirmedFmt = "תודה %s %s! רשמתי שאתה מעוניין בדירה מספר %s, ונציג יחזור אליך לטלפון %s בהקדם."
	msgAskFeedback      = "האם עזרתי לך? (כן/לא)"
	msgFeedbackThanks   = "תודה רבה! שמחתי לעזור 😊"
	msgFeedbackSorry    = "מצטער שלא הצלחתי לעזור הפעם 🙏"
	msgRestart          = "התחל צ'אט חדש"

	msgSearchHeaderFmt = "מצאתי %d דירות מתאימות:"
	msgSearchEmpty     = "לא נמצאו דירות מתאימות. נסה לשנות את החיפוש – עיר אחרת, תקציב אחר או פחות חדרים."
	msgListingTagFmt   = "דירה %d:"
	msgSearchClosing   = "אם אחת הדירות מעניינת אותך, כתוב: מעוניין בדירה <מספר>. האם עזרתי לך? (כן/לא)"

	tokenYes = "כן"
	tokenNo  = "לא"
)
