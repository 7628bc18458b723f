package bot

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"hourglass/dal"
	"hourglass/lang"
	"hourglass/models"
)

var reminderTestNow = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

// dmReminderFixture builds a bot and a direct-message context backed by
// an in-memory database and a frozen clock.
func dmReminderFixture(t *testing.T) (*Bot, *Context, *gorm.DB) {
	t.Helper()
	db := dalTestDB(t)

	user, err := dal.CreateUser("300", "someone#1234", "400", db)
	if err != nil {
		t.Fatal(err)
	}

	b := &Bot{
		db:  db,
		log: zerolog.Nop(),
		now: func() time.Time { return reminderTestNow },
	}
	c := &Context{
		Context: context.Background(),
		Bot:     b,
		Tx:      db,
		User:    user,
		Prefs:   lang.NewPreferences(nil, user),
	}
	return b, c, db
}

func TestCreateReminderTimeBounds(t *testing.T) {
	now := reminderTestNow.Unix()

	tests := []struct {
		name string
		at   int64
		want ReminderStatus
	}{
		{"far future at the bound", now + MaxTime, StatusOK},
		{"one past the bound", now + MaxTime + 1, StatusLongTime},
		{"now", now, StatusOK},
		{"slightly stale", now - 5, StatusOK},
		{"just inside the grace", now - 9, StatusOK},
		{"at the grace edge", now - 10, StatusPastTime},
		{"well past", now - 11, StatusPastTime},
	}
	for _, tt := range tests {
		b, c, _ := dmReminderFixture(t)
		info, err := b.createReminder(c, "", "water plants", tt.at, nil, models.MethodRemind)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if info.Status != tt.want {
			t.Errorf("%s: status = %v, want %v", tt.name, info.Status, tt.want)
		}
	}
}

func TestCreateReminderClampsStaleTimes(t *testing.T) {
	b, c, db := dmReminderFixture(t)
	now := reminderTestNow.Unix()

	info, err := b.createReminder(c, "", "water plants", now-5, nil, models.MethodRemind)
	if err != nil {
		t.Fatal(err)
	}
	if info.Status != StatusOK || info.Time != now {
		t.Fatalf("status=%v time=%d, want OK at %d", info.Status, info.Time, now)
	}

	var stored models.Reminder
	if err := db.Take(&stored).Error; err != nil {
		t.Fatal(err)
	}
	if stored.Time != now {
		t.Errorf("stored time = %d, want clamped to %d", stored.Time, now)
	}
}

func TestCreateReminderIntervalBounds(t *testing.T) {
	now := reminderTestNow.Unix()

	tests := []struct {
		name     string
		interval int64
		want     ReminderStatus
	}{
		{"at the minimum", MinInterval, StatusOK},
		{"one under the minimum", MinInterval - 1, StatusShortInterval},
		{"at the maximum", MaxTime, StatusOK},
		{"one over the maximum", MaxTime + 1, StatusLongInterval},
	}
	for _, tt := range tests {
		b, c, db := dmReminderFixture(t)
		interval := tt.interval
		info, err := b.createReminder(c, "", "check the oven", now+60, &interval, models.MethodRemind)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if info.Status != tt.want {
			t.Errorf("%s: status = %v, want %v", tt.name, info.Status, tt.want)
		}

		var count int64
		if err := db.Model(&models.Reminder{}).Count(&count).Error; err != nil {
			t.Fatal(err)
		}
		if tt.want == StatusOK && count != 1 {
			t.Errorf("%s: %d rows stored, want 1", tt.name, count)
		}
		if tt.want != StatusOK && count != 0 {
			t.Errorf("%s: rejected interval still stored a row", tt.name)
		}
	}
}

func TestCreateReminderTargetsOwnDMChannel(t *testing.T) {
	b, c, db := dmReminderFixture(t)
	now := reminderTestNow.Unix()

	info, err := b.createReminder(c, "", "water plants", now+600, nil, models.MethodNatural)
	if err != nil {
		t.Fatal(err)
	}
	if info.Status != StatusOK || info.Mention != "<@300>" {
		t.Fatalf("info = %+v, want OK mentioning the user", info)
	}

	var stored models.Reminder
	if err := db.Preload("Message").Take(&stored).Error; err != nil {
		t.Fatal(err)
	}
	if stored.ChannelID != c.User.DMChannelID {
		t.Errorf("channel = %d, want the user's DM channel %d", stored.ChannelID, c.User.DMChannelID)
	}
	if stored.Message.Content != "water plants" || stored.Method != models.MethodNatural {
		t.Errorf("stored row = %+v", stored)
	}
}

func TestCreateReminderAllowsEmptyText(t *testing.T) {
	b, c, _ := dmReminderFixture(t)
	now := reminderTestNow.Unix()

	interval := MinInterval
	info, err := b.createReminder(c, "", "", now+60, &interval, models.MethodRemind)
	if err != nil {
		t.Fatal(err)
	}
	if info.Status != StatusOK {
		t.Errorf("empty text rejected with %v", info.Status)
	}
}

func TestCreateReminderNudgeAffectsOnlyLaterCreations(t *testing.T) {
	b, c, db := dmReminderFixture(t)
	now := reminderTestNow.Unix()

	state := discordgo.NewState()
	if err := state.GuildAdd(&discordgo.Guild{ID: "100"}); err != nil {
		t.Fatal(err)
	}
	if err := state.ChannelAdd(&discordgo.Channel{
		ID:      "200",
		GuildID: "100",
		Type:    discordgo.ChannelTypeGuildText,
	}); err != nil {
		t.Fatal(err)
	}
	b.session = &discordgo.Session{State: state}

	guildRow, err := dal.GetOrCreateGuild("100", db)
	if err != nil {
		t.Fatal(err)
	}
	channel, _, err := dal.GetOrCreateChannel("200", &guildRow.ID, db)
	if err != nil {
		t.Fatal(err)
	}
	// A delivery handle is already attached, as it would be after the
	// channel's first reminder.
	if err := db.Model(channel).UpdateColumn("webhook_id", "wh1").Error; err != nil {
		t.Fatal(err)
	}

	c.Session = b.session
	c.Guild = guildRow
	c.Message = &discordgo.Message{GuildID: "100", ChannelID: "200"}
	c.Prefs = lang.NewPreferences(guildRow, c.User)

	before, err := b.createReminder(c, "200", "first", now+600, nil, models.MethodRemind)
	if err != nil {
		t.Fatal(err)
	}
	if before.Status != StatusOK || before.Time != now+600 || before.Mention != "<#200>" {
		t.Fatalf("pre-nudge info = %+v", before)
	}

	if err := db.Model(channel).UpdateColumn("nudge", 300).Error; err != nil {
		t.Fatal(err)
	}

	after, err := b.createReminder(c, "200", "second", now+600, nil, models.MethodRemind)
	if err != nil {
		t.Fatal(err)
	}
	if after.Status != StatusOK || after.Time != now+900 {
		t.Fatalf("post-nudge info = %+v, want time %d", after, now+900)
	}

	reminders, err := dal.RemindersForChannel(channel.ID, false, 0, db)
	if err != nil {
		t.Fatal(err)
	}
	if len(reminders) != 2 {
		t.Fatalf("%d reminders stored, want 2", len(reminders))
	}
	if reminders[0].Time != now+600 || reminders[1].Time != now+900 {
		t.Errorf("stored times = %d, %d; the nudge must not touch earlier rows",
			reminders[0].Time, reminders[1].Time)
	}
}

func TestSelectReminderIDs(t *testing.T) {
	reminders := []models.Reminder{
		{Model: gorm.Model{ID: 11}},
		{Model: gorm.Model{ID: 22}},
		{Model: gorm.Model{ID: 33}},
	}

	tests := []struct {
		content string
		want    []uint
	}{
		{"1 3", []uint{11, 33}},
		{"2,3", []uint{22, 33}},
		{"delete 2 please", []uint{22}},
		{"0 4 99", nil},
		{"none of those", nil},
	}
	for _, tt := range tests {
		got := selectReminderIDs(reminders, tt.content)
		if len(got) != len(tt.want) {
			t.Errorf("selectReminderIDs(%q) = %v, want %v", tt.content, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("selectReminderIDs(%q) = %v, want %v", tt.content, got, tt.want)
			}
		}
	}
}
