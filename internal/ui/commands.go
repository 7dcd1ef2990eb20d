package ui

import (
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/auwalms/kasuwa/internal/actions"
	"github.com/auwalms/kasuwa/internal/market"
)

// Coordinator commands. Each runs one mutation in a command goroutine and
// asks for a fresh snapshot afterwards. Failures already surface as toasts
// through the notifier, so the errors are not re-reported here.

func (m Model) loginCmd(username string) tea.Cmd {
	return func() tea.Msg {
		_, _ = m.coord.Login(m.ctx, username)
		return refreshMsg{}
	}
}

func (m Model) registerCmd(name, username string) tea.Cmd {
	return func() tea.Msg {
		_, _ = m.coord.Register(m.ctx, name, username, "")
		return refreshMsg{}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		m.coord.Logout()
		return refreshMsg{}
	}
}

func (m Model) updateProfileCmd(name, username string) tea.Cmd {
	return func() tea.Msg {
		_ = m.coord.UpdateProfile(m.ctx, name, username)
		return refreshMsg{}
	}
}

func (m Model) updateProfilePictureCmd(pictureURL string) tea.Cmd {
	return func() tea.Msg {
		_ = m.coord.UpdateProfilePicture(m.ctx, pictureURL)
		return refreshMsg{}
	}
}

func (m Model) createProductCmd(draft actions.ProductDraft) tea.Cmd {
	return func() tea.Msg {
		draft.Images = m.resolveImages(draft.Images)
		_, _ = m.coord.CreateProduct(m.ctx, draft)
		return refreshMsg{}
	}
}

func (m Model) updateProductCmd(p market.Product) tea.Cmd {
	return func() tea.Msg {
		p.Images = m.resolveImages(p.Images)
		_ = m.coord.UpdateProduct(m.ctx, p)
		return refreshMsg{}
	}
}

func (m Model) deleteProductCmd(productID string) tea.Cmd {
	return func() tea.Msg {
		_ = m.coord.DeleteProduct(m.ctx, productID)
		return refreshMsg{}
	}
}

func (m Model) toggleSaveCmd(productID string) tea.Cmd {
	return func() tea.Msg {
		_, _ = m.coord.ToggleSave(m.ctx, productID)
		return refreshMsg{}
	}
}

func (m Model) messageSellerCmd(product market.Product, text string) tea.Cmd {
	return func() tea.Msg {
		threadID, err := m.coord.MessageSeller(m.ctx, product, text)
		if err != nil {
			return refreshMsg{}
		}
		return threadOpenedMsg(threadID)
	}
}

func (m Model) sendMessageCmd(threadID, text string) tea.Cmd {
	return func() tea.Msg {
		_ = m.coord.SendMessage(m.ctx, threadID, text)
		return refreshMsg{}
	}
}

// resolveImages turns form-entered image references into stored values. A
// reference that names a readable local file is uploaded and replaced with
// the returned URL; anything else passes through as-is.
func (m Model) resolveImages(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		data, err := os.ReadFile(ref)
		if err != nil {
			out = append(out, ref)
			continue
		}
		url, err := m.coord.UploadImage(m.ctx, filepath.Base(ref), data)
		if err != nil {
			continue
		}
		out = append(out, url)
	}
	return out
}
