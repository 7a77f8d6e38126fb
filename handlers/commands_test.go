package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rolebot/catalog"
	discordclient "rolebot/clients/discord"
	"rolebot/core"
	"rolebot/models"
	"rolebot/usecases/roles"
	"rolebot/utils"
)

const (
	testGuildID   = "100000000000000001"
	testChannelID = "100000000000000002"
	testTargetID  = "100000000000000003"
	testUserID    = "100000000000000004"
	testBotID     = "100000000000000005"
)

type commandsTestFixture struct {
	handler       *CommandsHandler
	discordClient *discordclient.MockDiscordClient
	rolesUseCase  *roles.MockRolesUseCase
	replies       []string
	ctx           context.Context
}

func testCatalog(t *testing.T) *catalog.Catalog {
	roleCatalog, err := catalog.New([]catalog.Category{
		{
			ID:    "player_types",
			Title: "How do you play?",
			Roles: []models.RoleMapping{
				{Symbol: "A", RoleName: "Casual"},
				{Symbol: "B", RoleName: "Competitive"},
				{Symbol: "C", RoleName: "Hardcore"},
			},
		},
		{
			ID:    "timezones",
			Title: "Select your timezone",
			Roles: []models.RoleMapping{
				{Symbol: "E", RoleName: "EU"},
				{Symbol: "U", RoleName: "US"},
			},
		},
	}, nil)
	require.NoError(t, err)
	return roleCatalog
}

func setupCommandsTest(t *testing.T) *commandsTestFixture {
	f := &commandsTestFixture{
		discordClient: new(discordclient.MockDiscordClient),
		rolesUseCase:  new(roles.MockRolesUseCase),
		ctx:           context.Background(),
	}
	f.handler = NewCommandsHandler(f.discordClient, f.rolesUseCase, testCatalog(t), "!")

	f.discordClient.On("SendMessage", mock.Anything, testChannelID, mock.Anything).
		Run(func(args mock.Arguments) {
			f.replies = append(f.replies, args.String(2))
		}).
		Return(&models.Message{}, nil).Maybe()

	return f
}

func (f *commandsTestFixture) asAdmin() {
	f.discordClient.On("IsAdministrator", mock.Anything, testChannelID, testUserID).Return(true, nil)
}

func (f *commandsTestFixture) run(t *testing.T, content string) {
	event := models.DiscordMessageEvent{
		GuildID:   testGuildID,
		ChannelID: testChannelID,
		MessageID: "m-1",
		UserID:    testUserID,
		Content:   content,
	}
	detected, ok := f.handler.Detect(event, testBotID)
	require.True(t, ok, "expected %q to be a command", content)
	f.handler.HandleCommand(f.ctx, event, detected)
}

func (f *commandsTestFixture) assertAllExpectations(t *testing.T) {
	f.discordClient.AssertExpectations(t)
	f.rolesUseCase.AssertExpectations(t)
}

func ensuredRoles() map[string][]models.Role {
	return map[string][]models.Role{
		"player_types": {{ID: "1", Name: "Casual"}, {ID: "2", Name: "Competitive"}, {ID: "3", Name: "Hardcore"}},
		"timezones":    {{ID: "4", Name: "EU"}, {ID: "5", Name: "US"}},
	}
}

func TestCommandsHandler_Detect(t *testing.T) {
	f := setupCommandsTest(t)
	base := models.DiscordMessageEvent{GuildID: testGuildID, ChannelID: testChannelID, UserID: testUserID}

	tests := []struct {
		name     string
		content  string
		isBot    bool
		guildID  string
		expected bool
	}{
		{name: "prefix command", content: "!setup_roles", expected: true},
		{name: "mention command", content: "<@" + testBotID + "> scan_roles", expected: true},
		{name: "unknown command", content: "!dance", expected: false},
		{name: "plain chat", content: "hello there", expected: false},
		{name: "bot author", content: "!setup_roles", isBot: true, expected: false},
		{name: "direct message", content: "!setup_roles", guildID: "-", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := base
			event.Content = tt.content
			event.AuthorIsBot = tt.isBot
			if tt.guildID == "-" {
				event.GuildID = ""
			}

			_, ok := f.handler.Detect(event, testBotID)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestCommandsHandler_RequiresAdministrator(t *testing.T) {
	f := setupCommandsTest(t)
	f.discordClient.On("IsAdministrator", mock.Anything, testChannelID, testUserID).Return(false, nil)

	f.run(t, "!setup_roles")

	assert.Equal(t, []string{msgNoPermission}, f.replies)
	f.rolesUseCase.AssertNotCalled(t, "EnsureRoles", mock.Anything, mock.Anything)
}

func TestCommandsHandler_SetupRoles(t *testing.T) {
	t.Run("reports created roles", func(t *testing.T) {
		f := setupCommandsTest(t)
		f.asAdmin()
		f.rolesUseCase.On("EnsureRoles", mock.Anything, testGuildID).Return(ensuredRoles(), nil).Once()

		f.run(t, "!setup_roles")

		assert.Equal(t, []string{
			"📋 Setting up roles... This may take a moment.",
			"✅ Successfully set up 5 roles across 2 categories!",
		}, f.replies)
		f.assertAllExpectations(t)
	})

	t.Run("permission failure gets a dedicated message", func(t *testing.T) {
		f := setupCommandsTest(t)
		f.asAdmin()
		f.rolesUseCase.On("EnsureRoles", mock.Anything, testGuildID).
			Return(nil, core.ErrPermissionDenied).Once()

		f.run(t, "!setup_roles")

		require.Len(t, f.replies, 2)
		assert.Equal(t,
			"❌ I don't have permission to manage roles. Please check my permissions and try again.",
			f.replies[1])
	})

	t.Run("other failures are echoed", func(t *testing.T) {
		f := setupCommandsTest(t)
		f.asAdmin()
		f.rolesUseCase.On("EnsureRoles", mock.Anything, testGuildID).Return(nil, errors.New("boom")).Once()

		f.run(t, "!setup_roles")

		require.Len(t, f.replies, 2)
		assert.Equal(t, "❌ An error occurred: boom", f.replies[1])
	})
}

func TestCommandsHandler_CreateRoleMessages(t *testing.T) {
	f := setupCommandsTest(t)
	f.asAdmin()
	f.discordClient.On("GetChannel", mock.Anything, testTargetID).
		Return(&models.Channel{ID: testTargetID, GuildID: testGuildID, Name: "roles"}, nil).Once()
	f.rolesUseCase.On("EnsureRoles", mock.Anything, testGuildID).Return(ensuredRoles(), nil).Once()
	f.rolesUseCase.On("Publish", mock.Anything, testTargetID, "player_types", ensuredRoles()["player_types"]).
		Return(mo.Some(&models.RoleBinding{MessageID: "p1"}), nil).Once()
	f.rolesUseCase.On("Publish", mock.Anything, testTargetID, "timezones", ensuredRoles()["timezones"]).
		Return(mo.Some(&models.RoleBinding{MessageID: "p2"}), nil).Once()

	f.run(t, "!create_role_messages <#"+testTargetID+">")

	assert.Equal(t, []string{
		"📝 Creating role messages in <#" + testTargetID + ">...",
		"✅ Successfully created 2 role selection messages!",
	}, f.replies)
	f.assertAllExpectations(t)
}

func TestCommandsHandler_SetupCategory(t *testing.T) {
	t.Run("missing category", func(t *testing.T) {
		f := setupCommandsTest(t)
		f.asAdmin()

		f.run(t, "!setup_category")

		assert.Equal(t, []string{"❌ Missing required argument: `category`."}, f.replies)
	})

	t.Run("unknown category lists the available ones", func(t *testing.T) {
		f := setupCommandsTest(t)
		f.asAdmin()

		f.run(t, "!setup_category dragons")

		assert.Equal(t,
			[]string{"❌ Category 'dragons' not found. Available categories: player_types, timezones"},
			f.replies)
		f.rolesUseCase.AssertNotCalled(t, "EnsureRoles", mock.Anything, mock.Anything)
	})

	t.Run("publishes into the invoking channel by default", func(t *testing.T) {
		f := setupCommandsTest(t)
		f.asAdmin()
		f.rolesUseCase.On("EnsureRoles", mock.Anything, testGuildID).Return(ensuredRoles(), nil).Once()
		f.rolesUseCase.On("Publish", mock.Anything, testChannelID, "timezones", ensuredRoles()["timezones"]).
			Return(mo.Some(&models.RoleBinding{MessageID: "p1"}), nil).Once()

		f.run(t, "!setup_category timezones")

		assert.Equal(t, []string{
			"📝 Setting up timezones roles and message in <#" + testChannelID + ">...",
			"✅ Successfully set up timezones roles and reaction message!",
		}, f.replies)
		f.assertAllExpectations(t)
	})

	t.Run("resolves channel by name", func(t *testing.T) {
		f := setupCommandsTest(t)
		f.asAdmin()
		f.discordClient.On("GetGuildTextChannels", mock.Anything, testGuildID).Return([]models.Channel{
			{ID: "c-1", Name: "general", GuildID: testGuildID},
			{ID: testTargetID, Name: "Timezone-Select", GuildID: testGuildID},
		}, nil).Once()
		f.rolesUseCase.On("EnsureRoles", mock.Anything, testGuildID).Return(ensuredRoles(), nil).Once()
		f.rolesUseCase.On("Publish", mock.Anything, testTargetID, "timezones", mock.Anything).
			Return(mo.Some(&models.RoleBinding{MessageID: "p1"}), nil).Once()

		f.run(t, "!setup_category timezones #timezone-select")

		require.Len(t, f.replies, 2)
		assert.Contains(t, f.replies[0], "<#"+testTargetID+">")
		f.assertAllExpectations(t)
	})

	t.Run("unknown channel", func(t *testing.T) {
		f := setupCommandsTest(t)
		f.asAdmin()
		f.discordClient.On("GetGuildTextChannels", mock.Anything, testGuildID).
			Return([]models.Channel{{ID: "c-1", Name: "general"}}, nil).Once()

		f.run(t, "!setup_category timezones nowhere")

		assert.Equal(t, []string{msgChannelNotFound}, f.replies)
		f.rolesUseCase.AssertNotCalled(t, "EnsureRoles", mock.Anything, mock.Anything)
	})

	t.Run("channel from another guild is rejected", func(t *testing.T) {
		f := setupCommandsTest(t)
		f.asAdmin()
		f.discordClient.On("GetChannel", mock.Anything, testTargetID).
			Return(&models.Channel{ID: testTargetID, GuildID: "other"}, nil).Once()

		f.run(t, "!setup_category timezones "+testTargetID)

		assert.Equal(t, []string{msgChannelNotFound}, f.replies)
	})
}

func TestCommandsHandler_RepostCategory(t *testing.T) {
	t.Run("reposts into the target channel", func(t *testing.T) {
		f := setupCommandsTest(t)
		f.asAdmin()
		f.rolesUseCase.On("RepostCategory", mock.Anything, testGuildID, testChannelID, "player_types").
			Return(mo.Some(&models.RoleBinding{MessageID: "p9"}), nil).Once()

		f.run(t, "!repost_category player_types")

		assert.Equal(t, []string{
			"🔄 Reposting player_types roles message in <#" + testChannelID + ">...",
			"✅ Successfully reposted player_types roles message in <#" + testChannelID + ">!",
		}, f.replies)
		f.assertAllExpectations(t)
	})

	t.Run("missing category prints usage", func(t *testing.T) {
		f := setupCommandsTest(t)
		f.asAdmin()

		f.run(t, "!repost_category")

		require.Len(t, f.replies, 1)
		assert.Contains(t, f.replies[0], "Usage: `!repost_category [category] #channel`")
		assert.Contains(t, f.replies[0], "`player_types`, `timezones`")
	})

	t.Run("permission failure", func(t *testing.T) {
		f := setupCommandsTest(t)
		f.asAdmin()
		f.rolesUseCase.On("RepostCategory", mock.Anything, testGuildID, testChannelID, "player_types").
			Return(mo.None[*models.RoleBinding](), core.ErrPermissionDenied).Once()

		f.run(t, "!repost_category player_types")

		require.Len(t, f.replies, 2)
		assert.Equal(t,
			"❌ I don't have permission to manage messages or roles. Please check my permissions and try again.",
			f.replies[1])
	})
}

func TestCommandsHandler_ScanRoles(t *testing.T) {
	t.Run("reports reconnected messages", func(t *testing.T) {
		f := setupCommandsTest(t)
		f.asAdmin()
		f.rolesUseCase.On("ScanChannel", mock.Anything, testChannelID).Return(3, nil).Once()

		f.run(t, "!scan_roles")

		assert.Equal(t, []string{
			"🔍 Scanning <#" + testChannelID + "> for role messages...",
			"✅ Successfully reconnected 3 role messages!",
		}, f.replies)
	})

	t.Run("nothing found", func(t *testing.T) {
		f := setupCommandsTest(t)
		f.asAdmin()
		f.rolesUseCase.On("ScanChannel", mock.Anything, testChannelID).Return(0, nil).Once()

		f.run(t, "!scan_roles")

		require.Len(t, f.replies, 2)
		assert.Equal(t, "❌ No matching role messages found in this channel.", f.replies[1])
	})

	t.Run("history access denied", func(t *testing.T) {
		f := setupCommandsTest(t)
		f.asAdmin()
		f.rolesUseCase.On("ScanChannel", mock.Anything, testChannelID).Return(0, core.ErrPermissionDenied).Once()

		f.run(t, "!scan_roles")

		require.Len(t, f.replies, 2)
		assert.Equal(t, "❌ I don't have permission to read message history or add reactions.", f.replies[1])
	})
}

func TestArgAt(t *testing.T) {
	args := utils.DetectCommand("!setup_category timezones", "!", testBotID).Args
	assert.Equal(t, "timezones", argAt(args, 0))
	assert.Equal(t, "", argAt(args, 1))
}
