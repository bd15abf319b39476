package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/sizing-assistant/internal/catalog"
	"github.com/jonathan/sizing-assistant/internal/chatbot"
)

func newTestChatBot(t *testing.T) *chatbot.Bot {
	t.Helper()
	store, err := catalog.Load(context.Background(), testDataDir)
	require.NoError(t, err)
	return chatbot.New(chatbot.Options{Catalog: store})
}

func TestRunChat_Conversation(t *testing.T) {
	bot := newTestChatBot(t)
	in := strings.NewReader("\n¿Qué talla me recomiendas para C0001 en el producto P001?\n/info\n/exit\nno se lee\n")
	var out bytes.Buffer

	err := runChat(context.Background(), bot, in, &out, chatOptions{sessionID: "cli-test", verbose: true})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, chatbot.WelcomeMessage)
	assert.Contains(t, text, "talla M")
	assert.Contains(t, text, "Sesión:    cli-test")
	assert.Contains(t, text, "Turnos:    2")
	assert.Contains(t, text, "Activos:   C0001 / P001")
	assert.Contains(t, text, "¡Hasta luego!")
	assert.Equal(t, 1, bot.Sessions().Count())
}

func TestRunChat_ListsAndEOF(t *testing.T) {
	bot := newTestChatBot(t)
	in := strings.NewReader("/clients\n/products\n")
	var out bytes.Buffer

	err := runChat(context.Background(), bot, in, &out, chatOptions{})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "C0001  Ana García")
	assert.Contains(t, out.String(), "P012")
}

func TestRunChat_ClearAndNew(t *testing.T) {
	bot := newTestChatBot(t)
	in := strings.NewReader("talla para C0001 y P001\n/clear\n/info\n/new\n")
	var out bytes.Buffer

	err := runChat(context.Background(), bot, in, &out, chatOptions{sessionID: "s1"})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Conversación reiniciada.")
	assert.Contains(t, text, "Turnos:    1")
	assert.Contains(t, text, "Nueva sesión: ")
	assert.Equal(t, 2, bot.Sessions().Count())
}

func TestWriteAvatar(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "avatars")

	path, err := writeAvatar(dir, "C0001", "P001", "M", "azul", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "C0001_P001_M_azul.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
}
