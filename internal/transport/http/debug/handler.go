// Package debug provides the API debug console.
package debug

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler serves the debug console and its sample history payload.
type Handler struct{}

// NewHandler creates a new debug handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes registers debug routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/debug", h.Console)
	e.GET("/debug/history", h.History)
}

// Console renders the API debug console page.
// GET /debug
func (h *Handler) Console(c echo.Context) error {
	return c.HTML(http.StatusOK, consoleHTML)
}

// History returns a canned sample of debug call records.
// GET /debug/history
func (h *Handler) History(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"history": []map[string]interface{}{
			{"time": "10:00", "endpoint": "POST /create_session", "status": 200},
			{"time": "10:05", "endpoint": "POST /chat", "status": 403},
		},
	})
}

const consoleHTML = `<!DOCTYPE html>
<html>
<head><title>chatgate debug console</title></head>
<body>
  <h1>API Debug Console</h1>
  <button onclick="createSession()">Create session</button>
  <input id="msg" placeholder="message">
  <button onclick="chat()">Send</button>
  <pre id="out"></pre>
  <script>
    let sessionId = null;
    async function createSession() {
      const res = await fetch('/api/create_session', {method: 'POST'});
      const body = await res.json();
      sessionId = body.session_id;
      show(res.status, body);
    }
    async function chat() {
      const res = await fetch('/api/chat', {
        method: 'POST',
        headers: {'Content-Type': 'application/json'},
        body: JSON.stringify({session_id: sessionId, message: document.getElementById('msg').value})
      });
      show(res.status, await res.json());
    }
    function show(status, body) {
      document.getElementById('out').textContent = status + ' ' + JSON.stringify(body, null, 2);
    }
  </script>
</body>
</html>`
