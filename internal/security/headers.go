package security

// Header is a response header name and value.
type Header struct {
	Name  string
	Value string
}

// DefensiveHeaders are set on every response, rejections included.
var DefensiveHeaders = []Header{
	{Name: "X-Content-Type-Options", Value: "nosniff"},
	{Name: "X-Frame-Options", Value: "DENY"},
	{Name: "X-XSS-Protection", Value: "1; mode=block"},
	{Name: "Referrer-Policy", Value: "strict-origin-when-cross-origin"},
}
