package pages

// DOM locators for the Classavo mock platform, grouped per page. Container
// ids and the `hidden` class convention are the stable contract the app
// guarantees; everything else hangs off these.
const (
	// Login page
	SelectorLoginForm     = "#loginForm"
	SelectorLoginEmail    = "#email"
	SelectorLoginPassword = "#password"
	SelectorLoginSubmit   = "#loginBtn"
	SelectorLoginError    = "#loginError"
	SelectorLoginSuccess  = "#loginSuccess"

	// Course join page
	SelectorCourseJoinForm = "#courseJoinForm"
	SelectorCourseCode     = "#courseCode"
	SelectorCoursePassword = "#coursePassword"
	SelectorCourseSubmit   = "#joinBtn"
	SelectorCourseError    = "#courseError"
	SelectorCourseSuccess  = "#courseSuccess"

	// Dashboard page
	SelectorDashboard        = "#courseDashboard"
	SelectorCourseTitle      = "#courseTitle"
	SelectorCourseCodeLabel  = "#courseCodeLabel"
	SelectorLoadingIndicator = "#loadingIndicator"
	SelectorStartCourseBtn   = "#startCourseBtn"
)
