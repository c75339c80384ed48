package cli

import (
	"fmt"

	"github.com/julianstephens/dayring/internal/api"
	"github.com/julianstephens/dayring/internal/keyring"
)

type LoginCmd struct {
	Email    string `arg:"" help:"Account email."`
	Password string `help:"Password. Prompted interactively when omitted." short:"p"`
}

func (c *LoginCmd) Run(ctx *Context) error {
	password := c.Password
	if password == "" {
		fmt.Print("Password: ")
		if _, err := fmt.Scanln(&password); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	reqCtx, cancel := RequestContext()
	defer cancel()

	resp, err := ctx.Client.Login(reqCtx, api.LoginRequest{Email: c.Email, Password: password})
	if err != nil {
		return err
	}
	if err := keyring.SetToken(resp.Token); err != nil {
		return fmt.Errorf("login succeeded but token could not be stored: %w", err)
	}
	fmt.Printf("Logged in as %s\n", resp.Profile.FullName)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := keyring.DeleteToken(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

type RegisterCmd struct {
	Email    string `arg:"" help:"Account email."`
	Name     string `help:"Full name." required:""`
	Password string `help:"Password." required:"" short:"p"`
}

func (c *RegisterCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	resp, err := ctx.Client.Register(reqCtx, api.RegisterRequest{
		Email:    c.Email,
		Password: c.Password,
		FullName: c.Name,
	})
	if err != nil {
		return err
	}
	if err := keyring.SetToken(resp.Token); err != nil {
		return fmt.Errorf("registration succeeded but token could not be stored: %w", err)
	}
	fmt.Printf("Welcome, %s\n", resp.Profile.FullName)
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	profile, err := ctx.Client.Me(reqCtx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\n", profile.FullName, profile.Email)
	if profile.SignupDate != "" {
		fmt.Printf("Member since %s\n", profile.SignupDate)
	}
	if profile.TimeZoneID != "" {
		fmt.Printf("Time zone: %s\n", profile.TimeZoneID)
	}
	return nil
}
