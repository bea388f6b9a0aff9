package homework

// Review statuses the API is known to return.
const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"
)

// verdicts maps every legal status to its human-readable verdict sentence.
// The wording is a compatibility surface: downstream chats (and tests)
// expect these strings byte-for-byte.
var verdicts = map[string]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}
