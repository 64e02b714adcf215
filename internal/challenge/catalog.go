package challenge

// DefaultQuestions is the C++ quiz served by the community site.
var DefaultQuestions = []string{
	"Declare a constant pointer to int in C++: ____ int* p. (fill in the blank)",
	"What does sizeof(uint64_t) return?",
	"Name the shared smart pointer in C++: std::____ (fill in the blank)",
	"Name the exclusive-ownership smart pointer in C++: std::____ (fill in the blank)",
	"auto foo(){return new int(1);} void call_foo(){foo();} What is wrong with call_foo?",
	"std::string str; str.reserve(100); What is the length of str?",
}

// DefaultAnswers are index aligned with DefaultQuestions.
var DefaultAnswers = []string{
	"const",
	"8",
	"shared_ptr",
	"unique_ptr",
	"memory leak",
	"0",
}

// NewDefaultBank returns a time seeded Bank over the default catalog.
func NewDefaultBank() (*Bank, error) {
	return NewBank(DefaultQuestions, DefaultAnswers, nil)
}
