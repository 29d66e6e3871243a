package contact

// Result is the body of an accepted submission.
type Result struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	SubmissionID   string   `json:"submissionId"`
	Timestamp      string   `json:"timestamp"`
	NextSteps      string   `json:"nextSteps,omitempty"`
	ContactOptions []string `json:"contactOptions,omitempty"`
}

// Fallback is an alternate way to reach the site owner when the endpoint fails.
type Fallback struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Failure is the body of a rejected submission.
type Failure struct {
	Error    string    `json:"error"`
	Message  string    `json:"message,omitempty"`
	Details  string    `json:"details,omitempty"`
	Fallback *Fallback `json:"fallback,omitempty"`
}

// Response is what a Transport hands back to the controller once a reply was obtained.
type Response struct {
	StatusCode int
	Result     Result
	Failure    *Failure
}

// Accepted reports whether the endpoint took the submission.
func (r *Response) Accepted() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300 && r.Result.Success
}

// FailureMessage returns the user-facing message carried by a rejected response, if any.
func (r *Response) FailureMessage() string {
	if r.Failure != nil && r.Failure.Message != "" {
		return r.Failure.Message
	}
	return r.Result.Message
}
