package handler

import "net/http"

// Flash messages carry one-shot confirmations ("Book borrowed successfully")
// across the post/redirect/get cycle of the action handlers.

const flashSessionName = "libtrack-flash"

func (s *Server) addFlash(w http.ResponseWriter, r *http.Request, msg string) {
	sess, _ := s.flashes.Get(r, flashSessionName)
	sess.AddFlash(msg)
	if err := sess.Save(r, w); err != nil {
		s.logger.Error("save flash", "err", err)
	}
}

// popFlash returns the pending flash message, if any, and clears it.
func (s *Server) popFlash(w http.ResponseWriter, r *http.Request) string {
	sess, _ := s.flashes.Get(r, flashSessionName)
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return ""
	}
	if err := sess.Save(r, w); err != nil {
		s.logger.Error("save flash", "err", err)
	}
	msg, _ := flashes[0].(string)
	return msg
}
